package models

import "time"

// -----------------------------------------------------------------------------
// Risk Alert (matches backend RiskAlertInDB)
// -----------------------------------------------------------------------------

type MRiskAlert struct {
	ID              int64          `json:"id"`
	AccountID       int64          `json:"account_id"`
	AlertType       string         `json:"alert_type"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	Message         string         `json:"message"`
	Details         map[string]any `json:"details,omitempty"`
	IsResolved      bool           `json:"is_resolved"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
	ResolutionNotes string         `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at,omitempty"`
}

// -----------------------------------------------------------------------------

// MRiskAlertCreate is the payload for raising a new alert.
type MRiskAlertCreate struct {
	AccountID int64          `json:"account_id"`
	AlertType string         `json:"alert_type"`
	RiskLevel RiskLevel      `json:"risk_level"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

// -----------------------------------------------------------------------------

// MAlertResolution is the body for PUT /risk-control/alerts/{id}/resolve.
type MAlertResolution struct {
	IsResolved      bool   `json:"is_resolved"`
	ResolutionNotes string `json:"resolution_notes,omitempty"`
}

// -----------------------------------------------------------------------------

// MAlertFilter narrows alert listings; zero values mean "no filter".
type MAlertFilter struct {
	AccountID  int64
	RiskLevel  RiskLevel
	IsResolved *bool
	Limit      int
	Skip       int
}
