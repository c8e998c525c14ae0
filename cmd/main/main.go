package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"risk-console/src/config"
	"risk-console/src/gateway"
	"risk-console/src/interfaces"
	"risk-console/src/logger"
	"risk-console/src/push"
	"risk-console/src/router"
	"risk-console/src/server"
	"risk-console/src/store"
	"risk-console/src/tokenstore"
	"risk-console/src/utils"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// 2. Durable token store
	var tokens interfaces.ITokenStore

	switch config.Storage.DBType {
	case "postgres":
		tokens, err = tokenstore.NewPostgresTokenStore(config.MConfig, appLogger.Named("TokenStore"))
	default:
		// Default to SQLite
		tokens, err = tokenstore.NewSQLiteTokenStore(config.MConfig, appLogger.Named("TokenStore"))
	}

	if err != nil {
		appLogger.Critical("Failed to init token store: %v", err)
	}
	defer tokens.Close()

	// 3. Session-aware components. The navigator is built first so the
	// gateway can route to login on auth failures; the store binds back in
	// afterwards as the live session source.
	nav := router.NewNavigator(tokens, appLogger.Named("Router"))
	api := gateway.NewClient(config.MConfig, tokens, nav, appLogger.Named("Gateway"))
	st := store.NewStore(api, tokens, appLogger.Named("Store"))
	nav.BindSession(st)
	api.BindSession(st)

	// 4. Restore any persisted session and land on the right route
	restored, err := st.RestoreSession()
	if err != nil {
		appLogger.Warning("Session restore failed: %v", err)
	}
	nav.Navigate("/")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if restored {
		appLogger.Info("Session restored, fetching profile...")
		if _, err := st.FetchCurrentUser(ctx); err != nil {
			// A stale token already got cleared by the 401 path.
			appLogger.Warning("Profile fetch failed: %v", err)
		} else {
			nav.Navigate(router.DefaultRoute.Path)
		}
	}

	// 5. Push channel
	pushClient, err := push.NewClient(config.MConfig, st, appLogger.Named("Push"))
	if err != nil {
		appLogger.Critical("Failed to init push client: %v", err)
	}
	pushClient.Start()

	// 6. Snapshot refresher
	wrapWg := &sync.WaitGroup{}
	refresher := utils.NewSnapshotRefresher(config.MConfig, st, appLogger.Named("Refresher"))
	refresher.Start(ctx, wrapWg)

	// Initial snapshot once a session exists
	if st.SessionToken() != "" {
		appLogger.Info("Fetching initial snapshots...")
		refresher.RefreshAll(ctx)
	}

	// 7. Local console surface
	srv := server.NewConsoleServer(config.MConfig, st, pushClient, nav, appLogger.Named("Console"))
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Console surface failed: %v", err)
		}
	}()

	appLogger.Info("Risk console running. Current route: %s", nav.Current().Path)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	cancel()
	pushClient.Stop()
	if err := srv.Stop(); err != nil {
		appLogger.Warning("Console surface shutdown: %v", err)
	}
	wrapWg.Wait()
}
