package push

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"risk-console/src/logger"
	"risk-console/src/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type captureSink struct {
	deltas chan models.MPositionDelta
}

func newCaptureSink() *captureSink {
	return &captureSink{deltas: make(chan models.MPositionDelta, 16)}
}

func (s *captureSink) UpdatePosition(delta models.MPositionDelta) {
	s.deltas <- delta
}

func (s *captureSink) next(t *testing.T) models.MPositionDelta {
	t.Helper()
	select {
	case d := <-s.deltas:
		return d
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a delta")
		return models.MPositionDelta{}
	}
}

func (s *captureSink) expectNone(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case d := <-s.deltas:
		t.Fatalf("unexpected delta for position %d", d.ID)
	case <-time.After(wait):
	}
}

// -----------------------------------------------------------------------------

// pushServer upgrades /ws connections and hands them to the test via conns.
func pushServer(t *testing.T) (*httptest.Server, chan *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 4)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
		// Keep reading so client pings get their pongs.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, conns
}

// -----------------------------------------------------------------------------

func newTestPushClient(t *testing.T, baseURL string, sink PositionSink) *Client {
	t.Helper()
	cfg := &models.MConfig{}
	cfg.API.BaseURL = baseURL
	cfg.Push.ReconnectBaseMs = 10
	cfg.Push.ReconnectMaxMs = 50

	client, err := NewClient(cfg, sink, logger.NewLogger("ERROR", "test"))
	require.NoError(t, err)
	return client
}

func awaitConn(t *testing.T, conns chan *websocket.Conn) *websocket.Conn {
	t.Helper()
	select {
	case c := <-conns:
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a connection")
		return nil
	}
}

// -----------------------------------------------------------------------------
// URL derivation
// -----------------------------------------------------------------------------

func TestDeriveURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000/ws"},
		{"https://risk.example.com", "wss://risk.example.com/ws"},
		{"http://10.0.0.5:9000", "ws://10.0.0.5:9000/ws"},
	}

	for _, tt := range tests {
		got, err := DeriveURL(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

// -----------------------------------------------------------------------------
// Message dispatch
// -----------------------------------------------------------------------------

func TestPositionUpdateReachesSink(t *testing.T) {
	srv, conns := pushServer(t)
	sink := newCaptureSink()

	client := newTestPushClient(t, srv.URL, sink)
	client.Start()
	defer client.Stop()

	conn := awaitConn(t, conns)
	err := conn.WriteMessage(websocket.TextMessage, []byte(
		`{"type":"position_update","data":{"id":42,"current_price":62500.0,"unrealized_pnl":3750.0}}`,
	))
	require.NoError(t, err)

	delta := sink.next(t)
	assert.Equal(t, int64(42), delta.ID)
	require.NotNil(t, delta.CurrentPrice)
	assert.Equal(t, 62500.0, *delta.CurrentPrice)
	require.NotNil(t, delta.UnrealizedPnl)
	assert.Equal(t, 3750.0, *delta.UnrealizedPnl)
	// Fields absent from the frame stay unsupplied.
	assert.Nil(t, delta.Size)
}

// -----------------------------------------------------------------------------

func TestBadFramesAreDiscardedWithoutClosing(t *testing.T) {
	srv, conns := pushServer(t)
	sink := newCaptureSink()

	client := newTestPushClient(t, srv.URL, sink)
	client.Start()
	defer client.Stop()

	conn := awaitConn(t, conns)

	// Undecodable frame, unknown event type, then a missing id: all dropped.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"account_update","data":{}}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"position_update","data":{"size":1.0}}`)))

	// The connection survives; the next valid frame still lands.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(
		`{"type":"position_update","data":{"id":7,"size":1.0}}`,
	)))

	delta := sink.next(t)
	assert.Equal(t, int64(7), delta.ID)
	sink.expectNone(t, 100*time.Millisecond)
}

// -----------------------------------------------------------------------------
// Reconnection
// -----------------------------------------------------------------------------

func TestReconnectAfterServerDrop(t *testing.T) {
	srv, conns := pushServer(t)
	sink := newCaptureSink()

	client := newTestPushClient(t, srv.URL, sink)
	client.Start()
	defer client.Stop()

	first := awaitConn(t, conns)
	first.Close() // simulate server-side drop

	// The client redials on its own and the new connection works.
	second := awaitConn(t, conns)
	require.NoError(t, second.WriteMessage(websocket.TextMessage, []byte(
		`{"type":"position_update","data":{"id":9}}`,
	)))

	delta := sink.next(t)
	assert.Equal(t, int64(9), delta.ID)
}

// -----------------------------------------------------------------------------

func TestStopSuppressesReconnection(t *testing.T) {
	srv, conns := pushServer(t)
	sink := newCaptureSink()

	client := newTestPushClient(t, srv.URL, sink)
	client.Start()

	awaitConn(t, conns)
	client.Stop()
	client.Stop() // idempotent

	select {
	case <-conns:
		t.Fatal("client reconnected after Stop")
	case <-time.After(200 * time.Millisecond):
	}
	assert.Equal(t, Disconnected, client.State())
}

// -----------------------------------------------------------------------------

func TestReconnectGivesUpAtAttemptCeiling(t *testing.T) {
	cfg := &models.MConfig{}
	cfg.API.BaseURL = "http://127.0.0.1:1" // nothing listens here
	cfg.Push.ReconnectBaseMs = 1
	cfg.Push.ReconnectMaxMs = 2
	cfg.Push.MaxAttempts = 3

	client, err := NewClient(cfg, newCaptureSink(), logger.NewLogger("ERROR", "test"))
	require.NoError(t, err)

	client.Start()

	require.Eventually(t, func() bool {
		return client.State() == Disconnected
	}, 3*time.Second, 10*time.Millisecond)
}

// -----------------------------------------------------------------------------
// Backoff
// -----------------------------------------------------------------------------

func TestBackoffDoublesUpToCeiling(t *testing.T) {
	cfg := &models.MConfig{}
	cfg.API.BaseURL = "http://localhost:8000"
	cfg.Push.ReconnectBaseMs = 100
	cfg.Push.ReconnectMaxMs = 400

	client, err := NewClient(cfg, newCaptureSink(), logger.NewLogger("ERROR", "test"))
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, client.backoff(1))
	assert.Equal(t, 200*time.Millisecond, client.backoff(2))
	assert.Equal(t, 400*time.Millisecond, client.backoff(3))
	// Capped, never unbounded.
	assert.Equal(t, 400*time.Millisecond, client.backoff(10))
}

// -----------------------------------------------------------------------------

func TestBackoffJitterStaysInBounds(t *testing.T) {
	cfg := &models.MConfig{}
	cfg.API.BaseURL = "http://localhost:8000"
	cfg.Push.ReconnectBaseMs = 100
	cfg.Push.ReconnectMaxMs = 100
	cfg.Push.Jitter = 0.2

	client, err := NewClient(cfg, newCaptureSink(), logger.NewLogger("ERROR", "test"))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		d := client.backoff(1)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.LessOrEqual(t, d, 120*time.Millisecond)
	}
}
