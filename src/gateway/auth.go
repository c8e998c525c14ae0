package gateway

import (
	"context"
	"net/http"

	"risk-console/src/models"
)

// -----------------------------------------------------------------------------
// Auth endpoints
// -----------------------------------------------------------------------------

func (c *Client) Register(ctx context.Context, creds models.MCredentials) (*models.MUserProfile, error) {
	var user models.MUserProfile
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// -----------------------------------------------------------------------------

// Login exchanges credentials for a bearer token. It does not persist the
// token; that is the session action's job.
func (c *Client) Login(ctx context.Context, creds models.MCredentials) (*models.MToken, error) {
	var token models.MToken
	if err := c.do(ctx, http.MethodPost, "/auth/token", nil, creds, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// -----------------------------------------------------------------------------

func (c *Client) Me(ctx context.Context) (*models.MUserProfile, error) {
	var user models.MUserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
