package store

import (
	"context"
	"encoding/json"
	"fmt"

	"risk-console/src/models"
)

// -----------------------------------------------------------------------------
// Actions - async orchestration. Each action calls the gateway, then commits
// the corresponding mutation, returning the server payload to the caller or
// propagating the error untouched after logging it. An action either commits
// exactly one mutation set or commits nothing.
//
// Overlapping fetches for the same resource commit in response-arrival order;
// the sequence tags from beginFetch make the last-issued request win.
// -----------------------------------------------------------------------------

// FetchAccounts pulls the authoritative account snapshot.
func (s *Store) FetchAccounts(ctx context.Context) ([]models.MAccount, error) {
	seq := s.beginFetch("accounts")
	accounts, err := s.API.ListAccounts(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch accounts: %v", err)
		return nil, err
	}
	s.commit("accounts", seq, func() { s.setAccounts(accounts) })
	return accounts, nil
}

// -----------------------------------------------------------------------------

func (s *Store) CreateAccount(ctx context.Context, payload models.MAccountCreate) (*models.MAccount, error) {
	account, err := s.API.CreateAccount(ctx, payload)
	if err != nil {
		s.Logger.Error("Failed to create account: %v", err)
		return nil, err
	}
	// The backend owns derived account fields; re-fetch the snapshot.
	if _, err := s.FetchAccounts(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// -----------------------------------------------------------------------------

func (s *Store) UpdateAccount(ctx context.Context, accountID int64, payload models.MAccountCreate) (*models.MAccount, error) {
	account, err := s.API.UpdateAccount(ctx, accountID, payload)
	if err != nil {
		s.Logger.Error("Failed to update account %d: %v", accountID, err)
		return nil, err
	}
	if _, err := s.FetchAccounts(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// -----------------------------------------------------------------------------

func (s *Store) DeleteAccount(ctx context.Context, accountID int64) error {
	if err := s.API.DeleteAccount(ctx, accountID); err != nil {
		s.Logger.Error("Failed to delete account %d: %v", accountID, err)
		return err
	}
	_, err := s.FetchAccounts(ctx)
	return err
}

// -----------------------------------------------------------------------------
// Risk config actions
// -----------------------------------------------------------------------------

func (s *Store) FetchRiskConfig(ctx context.Context, accountID int64) (*models.MRiskConfig, error) {
	resource := fmt.Sprintf("risk-config/%d", accountID)
	seq := s.beginFetch(resource)
	cfg, err := s.API.GetRiskConfig(ctx, accountID)
	if err != nil {
		s.Logger.Error("Failed to fetch risk config for account %d: %v", accountID, err)
		return nil, err
	}
	s.commit(resource, seq, func() { s.setRiskConfig(accountID, *cfg) })
	return cfg, nil
}

// -----------------------------------------------------------------------------

func (s *Store) UpdateRiskConfig(ctx context.Context, accountID int64, payload models.MRiskConfig) (*models.MRiskConfig, error) {
	resource := fmt.Sprintf("risk-config/%d", accountID)
	seq := s.beginFetch(resource)
	cfg, err := s.API.UpdateRiskConfig(ctx, accountID, payload)
	if err != nil {
		s.Logger.Error("Failed to update risk config for account %d: %v", accountID, err)
		return nil, err
	}
	s.commit(resource, seq, func() { s.setRiskConfig(accountID, *cfg) })
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Position actions
// -----------------------------------------------------------------------------

// FetchPositions pulls the full position snapshot. Snapshot replacement is
// always collection-wide; filtered listings are a gateway-level concern.
func (s *Store) FetchPositions(ctx context.Context) ([]models.MPosition, error) {
	seq := s.beginFetch("positions")
	positions, err := s.API.ListPositions(ctx, 0)
	if err != nil {
		s.Logger.Error("Failed to fetch positions: %v", err)
		return nil, err
	}
	s.commit("positions", seq, func() { s.setPositions(positions) })
	return positions, nil
}

// -----------------------------------------------------------------------------

func (s *Store) CreatePosition(ctx context.Context, payload models.MPositionCreate) (*models.MPosition, error) {
	position, err := s.API.CreatePosition(ctx, payload)
	if err != nil {
		s.Logger.Error("Failed to create position: %v", err)
		return nil, err
	}
	if _, err := s.FetchPositions(ctx); err != nil {
		return nil, err
	}
	return position, nil
}

// -----------------------------------------------------------------------------

// PatchPosition sends a partial update and stores the authoritative record
// the backend returns.
func (s *Store) PatchPosition(ctx context.Context, positionID int64, delta models.MPositionDelta) (*models.MPosition, error) {
	position, err := s.API.UpdatePosition(ctx, positionID, delta)
	if err != nil {
		s.Logger.Error("Failed to patch position %d: %v", positionID, err)
		return nil, err
	}
	s.mu.Lock()
	s.upsertPosition(*position)
	s.mu.Unlock()
	return position, nil
}

// -----------------------------------------------------------------------------

func (s *Store) CheckPositionRisk(ctx context.Context, query models.MPositionRiskQuery) (*models.MRiskCheckResult, error) {
	result, err := s.API.CheckPositionRisk(ctx, query)
	if err != nil {
		s.Logger.Error("Failed to check position risk: %v", err)
		return nil, err
	}
	return result, nil
}

// -----------------------------------------------------------------------------

func (s *Store) CheckOrderRisk(ctx context.Context, query models.MOrderRiskQuery) (*models.MRiskCheckResult, error) {
	result, err := s.API.CheckOrderRisk(ctx, query)
	if err != nil {
		s.Logger.Error("Failed to check order risk: %v", err)
		return nil, err
	}
	return result, nil
}

// -----------------------------------------------------------------------------
// Alert actions
// -----------------------------------------------------------------------------

func (s *Store) FetchAlerts(ctx context.Context, filter models.MAlertFilter) ([]models.MRiskAlert, error) {
	seq := s.beginFetch("alerts")
	alerts, err := s.API.ListAlerts(ctx, filter)
	if err != nil {
		s.Logger.Error("Failed to fetch alerts: %v", err)
		return nil, err
	}
	s.commit("alerts", seq, func() { s.setAlerts(alerts) })
	return alerts, nil
}

// -----------------------------------------------------------------------------

func (s *Store) CreateAlert(ctx context.Context, payload models.MRiskAlertCreate) (*models.MRiskAlert, error) {
	alert, err := s.API.CreateAlert(ctx, payload)
	if err != nil {
		s.Logger.Error("Failed to create alert: %v", err)
		return nil, err
	}
	s.UpdateAlert(*alert)
	return alert, nil
}

// -----------------------------------------------------------------------------

func (s *Store) ResolveAlert(ctx context.Context, alertID int64, notes string) (*models.MRiskAlert, error) {
	resolution := models.MAlertResolution{IsResolved: true, ResolutionNotes: notes}
	alert, err := s.API.ResolveAlert(ctx, alertID, resolution)
	if err != nil {
		s.Logger.Error("Failed to resolve alert %d: %v", alertID, err)
		return nil, err
	}
	s.UpdateAlert(*alert)
	return alert, nil
}

// -----------------------------------------------------------------------------
// Dashboard actions
// -----------------------------------------------------------------------------

func (s *Store) FetchDashboardSummary(ctx context.Context) (*models.MDashboardSummary, error) {
	seq := s.beginFetch("dashboard/summary")
	summary, err := s.API.DashboardSummary(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch dashboard summary: %v", err)
		return nil, err
	}
	partial, err := toMetricsMap(summary)
	if err != nil {
		s.Logger.Error("Failed to flatten dashboard summary: %v", err)
		return nil, err
	}
	s.commit("dashboard/summary", seq, func() { s.updateDashboardData(partial) })
	return summary, nil
}

// -----------------------------------------------------------------------------

// FetchAccountRiskSummary merges one account's aggregate into the dashboard
// metrics alongside the global summary keys.
func (s *Store) FetchAccountRiskSummary(ctx context.Context, accountID int64) (*models.MAccountRiskSummary, error) {
	resource := fmt.Sprintf("dashboard/risk-summary/%d", accountID)
	seq := s.beginFetch(resource)
	summary, err := s.API.AccountRiskSummary(ctx, accountID)
	if err != nil {
		s.Logger.Error("Failed to fetch risk summary for account %d: %v", accountID, err)
		return nil, err
	}
	partial, err := toMetricsMap(summary)
	if err != nil {
		s.Logger.Error("Failed to flatten risk summary: %v", err)
		return nil, err
	}
	s.commit(resource, seq, func() { s.updateDashboardData(partial) })
	return summary, nil
}

// -----------------------------------------------------------------------------

func (s *Store) FetchPositionChart(ctx context.Context, timeRange string) (*models.MPositionChart, error) {
	chart, err := s.API.PositionChart(ctx, timeRange)
	if err != nil {
		s.Logger.Error("Failed to fetch position chart: %v", err)
		return nil, err
	}
	return chart, nil
}

// -----------------------------------------------------------------------------

func (s *Store) FetchRiskChart(ctx context.Context) ([]models.MRiskDistributionItem, error) {
	items, err := s.API.RiskChart(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch risk chart: %v", err)
		return nil, err
	}
	return items, nil
}

// -----------------------------------------------------------------------------

func (s *Store) FetchDashboardAlerts(ctx context.Context) ([]models.MDashboardAlert, error) {
	alerts, err := s.API.DashboardAlerts(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch dashboard alerts: %v", err)
		return nil, err
	}
	return alerts, nil
}

// -----------------------------------------------------------------------------
// Sync and history actions (no local mutation; results arrive by snapshot
// and push)
// -----------------------------------------------------------------------------

func (s *Store) SyncPositions(ctx context.Context) error {
	if err := s.API.SyncPositions(ctx); err != nil {
		s.Logger.Error("Failed to trigger position sync: %v", err)
		return err
	}
	return nil
}

func (s *Store) SyncAccountPositions(ctx context.Context, accountID int64) error {
	if err := s.API.SyncAccountPositions(ctx, accountID); err != nil {
		s.Logger.Error("Failed to trigger position sync for account %d: %v", accountID, err)
		return err
	}
	return nil
}

func (s *Store) SyncAccountHistory(ctx context.Context, accountID int64) error {
	if err := s.API.SyncAccountHistory(ctx, accountID); err != nil {
		s.Logger.Error("Failed to trigger history sync for account %d: %v", accountID, err)
		return err
	}
	return nil
}

func (s *Store) FetchTransactionHistory(ctx context.Context, accountID int64, limit int) ([]models.MTransaction, error) {
	rows, err := s.API.TransactionHistory(ctx, accountID, limit)
	if err != nil {
		s.Logger.Error("Failed to fetch transaction history: %v", err)
		return nil, err
	}
	return rows, nil
}

// -----------------------------------------------------------------------------
// Session actions
// -----------------------------------------------------------------------------

// Login exchanges credentials for a token, persists it, and records it in the
// session. On failure nothing is stored and the error propagates.
func (s *Store) Login(ctx context.Context, creds models.MCredentials) (*models.MToken, error) {
	token, err := s.API.Login(ctx, creds)
	if err != nil {
		s.Logger.Error("Login failed: %v", err)
		return nil, err
	}
	if err := s.Tokens.Set(token.AccessToken); err != nil {
		s.Logger.Error("Failed to persist token: %v", err)
		return nil, err
	}
	s.SetSessionToken(token.AccessToken)
	return token, nil
}

// -----------------------------------------------------------------------------

func (s *Store) Register(ctx context.Context, creds models.MCredentials) (*models.MUserProfile, error) {
	user, err := s.API.Register(ctx, creds)
	if err != nil {
		s.Logger.Error("Registration failed: %v", err)
		return nil, err
	}
	return user, nil
}

// -----------------------------------------------------------------------------

// FetchCurrentUser resolves /auth/me into the session profile.
func (s *Store) FetchCurrentUser(ctx context.Context) (*models.MUserProfile, error) {
	user, err := s.API.Me(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch current user: %v", err)
		return nil, err
	}
	s.SetCurrentUser(user)
	return user, nil
}

// -----------------------------------------------------------------------------

// RestoreSession recovers a persisted token on boot. A recovered token with
// no profile yet is the expected transient state until FetchCurrentUser runs.
func (s *Store) RestoreSession() (bool, error) {
	token, err := s.Tokens.Get()
	if err != nil {
		s.Logger.Error("Failed to read persisted token: %v", err)
		return false, err
	}
	if token == "" {
		return false, nil
	}
	s.SetSessionToken(token)
	return true, nil
}

// -----------------------------------------------------------------------------

// Logout evicts the token and destroys the session.
func (s *Store) Logout() error {
	if err := s.Tokens.Clear(); err != nil {
		s.Logger.Error("Failed to clear token: %v", err)
		return err
	}
	s.ClearSession()
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// toMetricsMap flattens a typed summary into metric keys for the shallow
// dashboard merge, so summaries from different endpoints can coexist.
func toMetricsMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
