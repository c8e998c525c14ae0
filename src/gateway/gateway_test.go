package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"risk-console/src/helpers"
	"risk-console/src/logger"
	"risk-console/src/models"
	"risk-console/src/tokenstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type recordingNavigator struct {
	forced atomic.Int32
}

func (n *recordingNavigator) ForceLogin() {
	n.forced.Add(1)
}

type recordingEvictor struct {
	cleared atomic.Int32
}

func (e *recordingEvictor) ClearSession() {
	e.cleared.Add(1)
}

// -----------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.Handler) (*Client, *tokenstore.MemoryTokenStore, *recordingNavigator) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &models.MConfig{}
	cfg.API.BaseURL = srv.URL
	cfg.API.TimeoutSeconds = 5

	tokens := tokenstore.NewMemoryTokenStore()
	nav := &recordingNavigator{}
	client := NewClient(cfg, tokens, nav, logger.NewLogger("ERROR", "test"))
	return client, tokens, nav
}

// -----------------------------------------------------------------------------
// Bearer attachment
// -----------------------------------------------------------------------------

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/risk-control/accounts/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.MAccount{})
	})

	client, tokens, _ := newTestClient(t, mux)
	tokens.Set("tok-xyz")

	_, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

// -----------------------------------------------------------------------------

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var hadHeader bool
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		json.NewEncoder(w).Encode(models.MToken{AccessToken: "tok", TokenType: "bearer"})
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), models.MCredentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.False(t, hadHeader)
}

// -----------------------------------------------------------------------------
// 401 handling
// -----------------------------------------------------------------------------

func TestUnauthorizedEvictsTokenAndForcesLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"expired"}`, http.StatusUnauthorized)
	})

	client, tokens, nav := newTestClient(t, mux)
	evictor := &recordingEvictor{}
	client.BindSession(evictor)
	tokens.Set("tok-dead")

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var authErr *helpers.AuthError
	assert.ErrorAs(t, err, &authErr)

	// Durable token and live session are both evicted.
	stored, _ := tokens.Get()
	assert.Empty(t, stored)
	assert.Equal(t, int32(1), evictor.cleared.Load())
	assert.Equal(t, int32(1), nav.forced.Load())
}

// -----------------------------------------------------------------------------

func TestUnauthorizedHandledOncePerResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusUnauthorized)
	})

	client, _, nav := newTestClient(t, mux)

	client.Me(context.Background())
	client.Me(context.Background())

	// Two responses, two evictions; never more per response.
	assert.Equal(t, int32(2), nav.forced.Load())
}

// -----------------------------------------------------------------------------
// Error mapping
// -----------------------------------------------------------------------------

func TestClientErrorsMapToValidationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/risk-control/accounts/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"name already taken"}`, http.StatusUnprocessableEntity)
	})

	client, _, nav := newTestClient(t, mux)

	_, err := client.CreateAccount(context.Background(), models.MAccountCreate{Exchange: "binance"})
	require.Error(t, err)

	var valErr *helpers.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, http.StatusUnprocessableEntity, valErr.Status)
	assert.Contains(t, valErr.Detail, "name already taken")
	// Non-401 failures never touch the session.
	assert.Equal(t, int32(0), nav.forced.Load())
}

// -----------------------------------------------------------------------------

func TestServerErrorsMapToServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.DashboardSummary(context.Background())
	require.Error(t, err)

	var srvErr *helpers.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusInternalServerError, srvErr.Status)
}

// -----------------------------------------------------------------------------

func TestNetworkFailureMapsToNetworkError(t *testing.T) {
	cfg := &models.MConfig{}
	cfg.API.BaseURL = "http://127.0.0.1:1" // nothing listens here
	cfg.API.TimeoutSeconds = 1

	client := NewClient(cfg, tokenstore.NewMemoryTokenStore(), &recordingNavigator{}, logger.NewLogger("ERROR", "test"))

	_, err := client.ListAccounts(context.Background())
	require.Error(t, err)

	var netErr *helpers.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

// -----------------------------------------------------------------------------
// Payload handling
// -----------------------------------------------------------------------------

func TestCallersReceivePayloadDirectly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/risk-control/positions/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.MPosition{{ID: 4, Symbol: "ETHUSDT", Size: 3}})
	})

	client, _, _ := newTestClient(t, mux)

	positions, err := client.ListPositions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "ETHUSDT", positions[0].Symbol)
}

// -----------------------------------------------------------------------------

func TestListPositionsFiltersByAccount(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/risk-control/positions/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.MPosition{})
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.ListPositions(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "account_id=12", gotQuery)
}

// -----------------------------------------------------------------------------

func TestListAlertsEncodesFilter(t *testing.T) {
	var got map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/risk-control/alerts/", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode([]models.MRiskAlert{})
	})

	client, _, _ := newTestClient(t, mux)

	resolved := false
	_, err := client.ListAlerts(context.Background(), models.MAlertFilter{
		AccountID:  5,
		RiskLevel:  models.RiskHigh,
		IsResolved: &resolved,
		Limit:      50,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"5"}, got["account_id"])
	assert.Equal(t, []string{"high"}, got["risk_level"])
	assert.Equal(t, []string{"false"}, got["is_resolved"])
	assert.Equal(t, []string{"50"}, got["limit"])
}

// -----------------------------------------------------------------------------

func TestMalformedPayloadMapsToDecodeError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var decErr *helpers.DecodeError
	assert.ErrorAs(t, err, &decErr)
}

// -----------------------------------------------------------------------------

func TestDeleteAcceptsNoContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/risk-control/accounts/3", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	client, _, _ := newTestClient(t, mux)
	assert.NoError(t, client.DeleteAccount(context.Background(), 3))
}
