package utils

import (
	"context"
	"sync"
	"time"

	"risk-console/src/logger"
	"risk-console/src/models"
	"risk-console/src/store"
)

// -----------------------------------------------------------------------------
// SnapshotRefresher - periodic REST snapshot pulls.
//
// Push deltas keep single records fresh, but collection-level truth only
// arrives by snapshot; the refresher re-pulls accounts, positions, alerts
// and the dashboard summary on an interval. With market_hours_only set it
// stays quiet while the configured venue is closed (crypto deployments leave
// it off; the backend streams around the clock).
// -----------------------------------------------------------------------------

type SnapshotRefresher struct {
	Store    *store.Store
	Logger   *logger.Logger
	Config   models.MRefreshConfig
	calendar *TradingCalendar
}

// -----------------------------------------------------------------------------

func NewSnapshotRefresher(cfg *models.MConfig, st *store.Store, log *logger.Logger) *SnapshotRefresher {
	r := &SnapshotRefresher{
		Store:  st,
		Logger: log,
		Config: cfg.Refresh,
	}
	if cfg.Refresh.MarketHoursOnly {
		r.calendar = GetCalendar(cfg.Refresh.CalendarMIC)
	}
	return r
}

// -----------------------------------------------------------------------------

// Start runs the refresh loop until ctx is cancelled.
func (r *SnapshotRefresher) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		interval := time.Duration(r.Config.IntervalSeconds) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		r.Logger.Info("Snapshot refresher running every %v", interval)

		for {
			select {
			case <-ctx.Done():
				r.Logger.Info("Snapshot refresher stopped")
				return
			case <-ticker.C:
				if r.calendar != nil && !r.calendar.IsOpenOnMinute(time.Now()) {
					r.Logger.Debug("Market closed, skipping snapshot refresh")
					continue
				}
				r.RefreshAll(ctx)
			}
		}
	}()
}

// -----------------------------------------------------------------------------

// RefreshAll pulls every collection snapshot once. Individual failures are
// logged by the store actions and do not abort the remaining pulls.
func (r *SnapshotRefresher) RefreshAll(ctx context.Context) {
	if _, err := r.Store.FetchAccounts(ctx); err != nil {
		return // the session likely died; the 401 path already handled it
	}
	r.Store.FetchPositions(ctx)
	r.Store.FetchAlerts(ctx, models.MAlertFilter{})
	r.Store.FetchDashboardSummary(ctx)
}
