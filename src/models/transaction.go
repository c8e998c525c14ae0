package models

import "time"

// MTransaction is a row from GET /risk-control/history/transactions.
type MTransaction struct {
	ID         int64     `json:"id"`
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source,omitempty"`
	PositionID int64     `json:"position_id,omitempty"`
	AccountID  int64     `json:"account_id,omitempty"`
}
