package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"risk-console/src/logger"
	"risk-console/src/models"
	"risk-console/src/push"
	"risk-console/src/router"
	"risk-console/src/store"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// ConsoleServer - local read-only surface over the mirrored state.
//
// It renders nothing and computes nothing; it only exposes what the store
// holds so operators (or a separate UI) can inspect the live mirror.
// -----------------------------------------------------------------------------

type ConsoleServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Store     *store.Store
	Push      *push.Client
	Navigator *router.Navigator

	engine *gin.Engine
	http   *http.Server
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewConsoleServer(cfg *models.MConfig, st *store.Store, pc *push.Client, nav *router.Navigator, log *logger.Logger) *ConsoleServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &ConsoleServer{
		Config:    cfg,
		Logger:    log,
		Store:     st,
		Push:      pc,
		Navigator: nav,
		engine:    gin.Default(),
	}

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *ConsoleServer) setupRoutes() {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/state", s.getState)
	s.engine.GET("/api/alerts", s.getAlerts)
	s.engine.GET("/api/route", s.getRoute)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *ConsoleServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Console.Host, s.Config.Console.Port)
	s.Logger.Info("Starting console surface on %s", addr)

	s.http = &http.Server{Addr: addr, Handler: s.engine}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *ConsoleServer) Stop() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *ConsoleServer) getHealth(c *gin.Context) {
	authenticated := s.Store.SessionToken() != ""

	c.JSON(200, gin.H{
		"status":        "ok",
		"authenticated": authenticated,
		"push_state":    s.Push.State().String(),
		"accounts":      len(s.Store.Accounts()),
		"positions":     len(s.Store.Positions()),
		"alerts":        len(s.Store.Alerts()),
	})
}

// -----------------------------------------------------------------------------

func (s *ConsoleServer) getState(c *gin.Context) {
	c.JSON(200, gin.H{
		"accounts":  s.Store.Accounts(),
		"positions": s.Store.Positions(),
		"alerts":    s.Store.Alerts(),
		"dashboard": s.Store.DashboardMetrics(),
	})
}

// -----------------------------------------------------------------------------

func (s *ConsoleServer) getAlerts(c *gin.Context) {
	if c.Query("active") == "true" {
		c.JSON(200, s.Store.ActiveAlerts())
		return
	}
	if level := c.Query("risk_level"); level != "" {
		c.JSON(200, s.Store.AlertsByRiskLevel(models.RiskLevel(level)))
		return
	}
	c.JSON(200, s.Store.Alerts())
}

// -----------------------------------------------------------------------------

func (s *ConsoleServer) getRoute(c *gin.Context) {
	current := s.Navigator.Current()
	c.JSON(200, gin.H{
		"path":          current.Path,
		"name":          current.Name,
		"requires_auth": current.RequiresAuth,
	})
}
