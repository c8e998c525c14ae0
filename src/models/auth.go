package models

import "time"

// -----------------------------------------------------------------------------
// Auth payloads (match backend auth schemas)
// -----------------------------------------------------------------------------

type MCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MUserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
