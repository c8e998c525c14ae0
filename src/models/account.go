package models

import "time"

// -----------------------------------------------------------------------------
// Account (matches backend AccountInDB)
// -----------------------------------------------------------------------------

type MAccount struct {
	ID        int64          `json:"id"`
	Exchange  string         `json:"exchange"`
	Name      string         `json:"name"`
	APIKey    string         `json:"api_key"`
	Settings  map[string]any `json:"settings,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// -----------------------------------------------------------------------------

// MAccountCreate is the payload for creating or updating an account.
type MAccountCreate struct {
	Exchange  string         `json:"exchange"`
	Name      string         `json:"name,omitempty"`
	APIKey    string         `json:"api_key"`
	APISecret string         `json:"api_secret"`
	Settings  map[string]any `json:"settings,omitempty"`
	IsActive  *bool          `json:"is_active,omitempty"`
}
