package gateway

import (
	"context"
	"net/http"
	"net/url"

	"risk-console/src/models"
)

// -----------------------------------------------------------------------------
// Dashboard endpoints
// -----------------------------------------------------------------------------

func (c *Client) DashboardSummary(ctx context.Context) (*models.MDashboardSummary, error) {
	var summary models.MDashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// -----------------------------------------------------------------------------

func (c *Client) PositionChart(ctx context.Context, timeRange string) (*models.MPositionChart, error) {
	query := url.Values{}
	if timeRange != "" {
		query.Set("time_range", timeRange)
	}

	var chart models.MPositionChart
	if err := c.do(ctx, http.MethodGet, "/dashboard/charts/position", query, nil, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// -----------------------------------------------------------------------------

func (c *Client) RiskChart(ctx context.Context) ([]models.MRiskDistributionItem, error) {
	var items []models.MRiskDistributionItem
	if err := c.do(ctx, http.MethodGet, "/dashboard/charts/risk", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// -----------------------------------------------------------------------------

func (c *Client) DashboardAlerts(ctx context.Context) ([]models.MDashboardAlert, error) {
	var alerts []models.MDashboardAlert
	if err := c.do(ctx, http.MethodGet, "/dashboard/alerts", nil, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}
