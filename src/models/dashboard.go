package models

// -----------------------------------------------------------------------------
// Dashboard payloads (match backend dashboard schemas)
// -----------------------------------------------------------------------------

type MDashboardSummary struct {
	TotalPositionValue  string  `json:"total_position_value"`
	PositionValueStatus string  `json:"position_value_status"`
	DayChange           float64 `json:"day_change"`
	ActiveAlerts        int     `json:"active_alerts"`
	AlertStatus         string  `json:"alert_status"`
	HighRiskAlerts      int     `json:"high_risk_alerts"`
	MediumRiskAlerts    int     `json:"medium_risk_alerts"`
	DailyPnl            float64 `json:"daily_pnl"`
	PnlStatus           string  `json:"pnl_status"`
	PnlRatio            float64 `json:"pnl_ratio"`
	ActiveAccounts      int     `json:"active_accounts"`
	NormalAccounts      int     `json:"normal_accounts"`
	AbnormalAccounts    int     `json:"abnormal_accounts"`
}

// -----------------------------------------------------------------------------

// MAccountRiskSummary is the per-account aggregate returned by
// GET /risk-control/accounts/{id}/risk-summary. Its fields are merged into the
// dashboard metrics alongside the global summary.
type MAccountRiskSummary struct {
	TotalPositionValue    float64           `json:"total_position_value"`
	TotalUnrealizedPnl    float64           `json:"total_unrealized_pnl"`
	HighestRiskLevel      string            `json:"highest_risk_level"`
	ActivePositionsCount  int               `json:"active_positions_count"`
	RiskLevelDistribution map[RiskLevel]int `json:"risk_level_distribution,omitempty"`
}

// -----------------------------------------------------------------------------
// Chart payloads
// -----------------------------------------------------------------------------

type MChartSeries struct {
	Name string    `json:"name"`
	Type string    `json:"type"`
	Data []float64 `json:"data"`
}

type MPositionChart struct {
	XAxis  []string       `json:"xAxis"`
	Series []MChartSeries `json:"series"`
}

type MRiskDistributionItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// -----------------------------------------------------------------------------

// MDashboardAlert is the compact alert row from GET /dashboard/alerts.
type MDashboardAlert struct {
	Time      string `json:"time"`
	Type      string `json:"type"`
	Account   string `json:"account"`
	Message   string `json:"message"`
	RiskLevel string `json:"risk_level"`
	Status    string `json:"status"`
}
