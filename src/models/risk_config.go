package models

import "time"

// MRiskConfig represents the per-account risk configuration (RiskConfigInDB).
type MRiskConfig struct {
	ID                  int64     `json:"id,omitempty"`
	AccountID           int64     `json:"account_id"`
	MaxLeverage         float64   `json:"max_leverage"`
	MaxPositionValue    float64   `json:"max_position_value"`
	RiskRatioThreshold  float64   `json:"risk_ratio_threshold"`
	MaxSingleOrder      float64   `json:"max_single_order"`
	PriceDeviationLimit float64   `json:"price_deviation_limit"`
	OrderFrequencyLimit int       `json:"order_frequency_limit"`
	MaxDailyLoss        float64   `json:"max_daily_loss"`
	RiskLevelThreshold  float64   `json:"risk_level_threshold"`
	IsActive            bool      `json:"is_active,omitempty"`
	CreatedAt           time.Time `json:"created_at,omitempty"`
	UpdatedAt           time.Time `json:"updated_at,omitempty"`
}
