package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"risk-console/src/helpers"
	"risk-console/src/interfaces"
	"risk-console/src/logger"
	"risk-console/src/models"
)

// -----------------------------------------------------------------------------
// Client - authenticated HTTP gateway to the risk-control backend.
//
// Every request gets the bearer token from the token store when one is
// present. A 401 response is handled centrally, exactly once per response:
// the token is evicted and the navigator is forced to the login route, then
// the failure still propagates to the caller. No request is ever retried
// here; failure handling beyond the 401 case belongs to the caller.
// -----------------------------------------------------------------------------

type Client struct {
	BaseURL    string
	Tokens     interfaces.ITokenStore
	Navigator  interfaces.INavigator
	Logger     *logger.Logger
	httpClient *http.Client

	mu       sync.Mutex
	sessions interfaces.ISessionEvictor
}

// -----------------------------------------------------------------------------

func NewClient(cfg *models.MConfig, tokens interfaces.ITokenStore, nav interfaces.INavigator, log *logger.Logger) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		Tokens:    tokens,
		Navigator: nav,
		Logger:    log,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------

// BindSession attaches the live session once the store exists, so a 401
// destroys it together with the durable token.
func (c *Client) BindSession(sessions interfaces.ISessionEvictor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions = sessions
}

// -----------------------------------------------------------------------------
// Core request path
// -----------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return helpers.NewDecodeError(fmt.Sprintf("encode %s %s body", method, path), err)
		}
		reader = bytes.NewReader(data)
	}

	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return helpers.NewNetworkError(fmt.Sprintf("build %s %s", method, path), err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Attach bearer token if present; a missing token is a no-op.
	token, err := c.Tokens.Get()
	if err != nil {
		c.Logger.Warning("Token store read failed: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return helpers.NewNetworkError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.evictSession(method, path)
		return helpers.NewAuthError(fmt.Sprintf("%s %s: unauthorized", method, path), nil)
	}

	if resp.StatusCode >= 400 {
		detail := readDetail(resp.Body)
		if resp.StatusCode < 500 {
			return helpers.NewValidationError(resp.StatusCode, detail)
		}
		return helpers.NewServerError(resp.StatusCode, detail)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	// Callers receive the payload directly, not an envelope.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return helpers.NewDecodeError(fmt.Sprintf("decode %s %s response", method, path), err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// evictSession handles authentication failure centrally. Eviction is total:
// the durable token, the live session identity, and the current route all go,
// so no later guard check can re-admit the dead credential.
func (c *Client) evictSession(method, path string) {
	c.Logger.Warning("Unauthorized response on %s %s, evicting session", method, path)
	if err := c.Tokens.Clear(); err != nil {
		c.Logger.Error("Failed to clear token: %v", err)
	}

	c.mu.Lock()
	sessions := c.sessions
	c.mu.Unlock()
	if sessions != nil {
		sessions.ClearSession()
	}

	if c.Navigator != nil {
		c.Navigator.ForceLogin()
	}
}

// -----------------------------------------------------------------------------

func readDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 64*1024))
	return strings.TrimSpace(string(b))
}
