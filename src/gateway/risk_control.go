package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"risk-console/src/models"
)

// -----------------------------------------------------------------------------
// Accounts
// -----------------------------------------------------------------------------

func (c *Client) ListAccounts(ctx context.Context) ([]models.MAccount, error) {
	var accounts []models.MAccount
	if err := c.do(ctx, http.MethodGet, "/risk-control/accounts/", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// -----------------------------------------------------------------------------

func (c *Client) CreateAccount(ctx context.Context, payload models.MAccountCreate) (*models.MAccount, error) {
	var account models.MAccount
	if err := c.do(ctx, http.MethodPost, "/risk-control/accounts/", nil, payload, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// -----------------------------------------------------------------------------

func (c *Client) UpdateAccount(ctx context.Context, accountID int64, payload models.MAccountCreate) (*models.MAccount, error) {
	var account models.MAccount
	path := fmt.Sprintf("/risk-control/accounts/%d", accountID)
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// -----------------------------------------------------------------------------

func (c *Client) DeleteAccount(ctx context.Context, accountID int64) error {
	path := fmt.Sprintf("/risk-control/accounts/%d", accountID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// -----------------------------------------------------------------------------
// Risk Config
// -----------------------------------------------------------------------------

func (c *Client) GetRiskConfig(ctx context.Context, accountID int64) (*models.MRiskConfig, error) {
	var cfg models.MRiskConfig
	path := fmt.Sprintf("/risk-control/accounts/%d/risk-config", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// -----------------------------------------------------------------------------

func (c *Client) UpdateRiskConfig(ctx context.Context, accountID int64, payload models.MRiskConfig) (*models.MRiskConfig, error) {
	var cfg models.MRiskConfig
	path := fmt.Sprintf("/risk-control/accounts/%d/risk-config", accountID)
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// -----------------------------------------------------------------------------
// Positions
// -----------------------------------------------------------------------------

// ListPositions returns positions, optionally filtered by account (0 = all).
func (c *Client) ListPositions(ctx context.Context, accountID int64) ([]models.MPosition, error) {
	var query url.Values
	if accountID != 0 {
		query = url.Values{"account_id": {strconv.FormatInt(accountID, 10)}}
	}

	var positions []models.MPosition
	if err := c.do(ctx, http.MethodGet, "/risk-control/positions/", query, nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// -----------------------------------------------------------------------------

func (c *Client) CreatePosition(ctx context.Context, payload models.MPositionCreate) (*models.MPosition, error) {
	var position models.MPosition
	if err := c.do(ctx, http.MethodPost, "/risk-control/positions/", nil, payload, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

// -----------------------------------------------------------------------------

func (c *Client) UpdatePosition(ctx context.Context, positionID int64, delta models.MPositionDelta) (*models.MPosition, error) {
	var position models.MPosition
	path := fmt.Sprintf("/risk-control/positions/%d", positionID)
	if err := c.do(ctx, http.MethodPatch, path, nil, delta, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

// -----------------------------------------------------------------------------
// Risk Checks
// -----------------------------------------------------------------------------

func (c *Client) CheckPositionRisk(ctx context.Context, query models.MPositionRiskQuery) (*models.MRiskCheckResult, error) {
	var result models.MRiskCheckResult
	if err := c.do(ctx, http.MethodPost, "/risk-control/check-position-risk", nil, query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// -----------------------------------------------------------------------------

func (c *Client) CheckOrderRisk(ctx context.Context, query models.MOrderRiskQuery) (*models.MRiskCheckResult, error) {
	var result models.MRiskCheckResult
	if err := c.do(ctx, http.MethodPost, "/risk-control/check-order-risk", nil, query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// -----------------------------------------------------------------------------
// Alerts
// -----------------------------------------------------------------------------

func (c *Client) ListAlerts(ctx context.Context, filter models.MAlertFilter) ([]models.MRiskAlert, error) {
	query := url.Values{}
	if filter.AccountID != 0 {
		query.Set("account_id", strconv.FormatInt(filter.AccountID, 10))
	}
	if filter.RiskLevel != "" {
		query.Set("risk_level", string(filter.RiskLevel))
	}
	if filter.IsResolved != nil {
		query.Set("is_resolved", strconv.FormatBool(*filter.IsResolved))
	}
	if filter.Limit != 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Skip != 0 {
		query.Set("skip", strconv.Itoa(filter.Skip))
	}

	var alerts []models.MRiskAlert
	if err := c.do(ctx, http.MethodGet, "/risk-control/alerts/", query, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// -----------------------------------------------------------------------------

func (c *Client) CreateAlert(ctx context.Context, payload models.MRiskAlertCreate) (*models.MRiskAlert, error) {
	var alert models.MRiskAlert
	if err := c.do(ctx, http.MethodPost, "/risk-control/alerts/", nil, payload, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// -----------------------------------------------------------------------------

func (c *Client) ResolveAlert(ctx context.Context, alertID int64, resolution models.MAlertResolution) (*models.MRiskAlert, error) {
	var alert models.MRiskAlert
	path := fmt.Sprintf("/risk-control/alerts/%d/resolve", alertID)
	if err := c.do(ctx, http.MethodPut, path, nil, resolution, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// -----------------------------------------------------------------------------
// Account Risk Summary
// -----------------------------------------------------------------------------

func (c *Client) AccountRiskSummary(ctx context.Context, accountID int64) (*models.MAccountRiskSummary, error) {
	var summary models.MAccountRiskSummary
	path := fmt.Sprintf("/risk-control/accounts/%d/risk-summary", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// -----------------------------------------------------------------------------
// Sync Triggers
// -----------------------------------------------------------------------------

// SyncPositions asks the backend to refresh all positions from the exchanges.
// The backend acknowledges with 202; results arrive via push and snapshots.
func (c *Client) SyncPositions(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/risk-control/positions/sync", nil, nil, nil)
}

// -----------------------------------------------------------------------------

func (c *Client) SyncAccountPositions(ctx context.Context, accountID int64) error {
	path := fmt.Sprintf("/risk-control/accounts/%d/positions/sync", accountID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// -----------------------------------------------------------------------------
// Transaction History
// -----------------------------------------------------------------------------

func (c *Client) TransactionHistory(ctx context.Context, accountID int64, limit int) ([]models.MTransaction, error) {
	query := url.Values{}
	if accountID != 0 {
		query.Set("account_id", strconv.FormatInt(accountID, 10))
	}
	if limit != 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var rows []models.MTransaction
	if err := c.do(ctx, http.MethodGet, "/risk-control/history/transactions", query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// -----------------------------------------------------------------------------

func (c *Client) SyncAccountHistory(ctx context.Context, accountID int64) error {
	path := fmt.Sprintf("/risk-control/accounts/%d/sync-history", accountID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}
