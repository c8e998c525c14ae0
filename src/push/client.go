package push

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"risk-console/src/helpers"
	"risk-console/src/logger"
	"risk-console/src/models"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024 * 1024 // 1MB for larger JSON messages
)

// -----------------------------------------------------------------------------
// Connection States
// -----------------------------------------------------------------------------

type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Closing
	Faulted
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Closing:
		return "closing"
	case Faulted:
		return "faulted"
	default:
		return "disconnected"
	}
}

// -----------------------------------------------------------------------------
// PositionSink receives decoded position deltas from the push channel.
// -----------------------------------------------------------------------------

type PositionSink interface {
	UpdatePosition(delta models.MPositionDelta)
}

// -----------------------------------------------------------------------------
// Client - persistent push-update connection with automatic reconnection.
//
// Reconnects use bounded exponential backoff with jitter so a fleet of
// consoles does not hammer a recovering server in lockstep. There is no
// message replay; updates missed while disconnected are recovered by the
// next REST snapshot fetch.
// -----------------------------------------------------------------------------

type Client struct {
	URL    string
	Sink   PositionSink
	Logger *logger.Logger

	cfg    models.MPushConfig
	dialer *websocket.Dialer

	mu       sync.Mutex
	conn     *websocket.Conn
	stopCh   chan struct{}
	stopOnce sync.Once
	state    atomic.Int32
}

// -----------------------------------------------------------------------------

func NewClient(cfg *models.MConfig, sink PositionSink, log *logger.Logger) (*Client, error) {
	wsURL, err := DeriveURL(cfg.API.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:    wsURL,
		Sink:   sink,
		Logger: log,
		cfg:    cfg.Push,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		stopCh: make(chan struct{}),
	}, nil
}

// -----------------------------------------------------------------------------

// DeriveURL maps the REST base URL to the push endpoint on the same host:
// ws://host/ws, upgraded to wss when the API itself is served over https.
func DeriveURL(apiBaseURL string) (string, error) {
	u, err := url.Parse(apiBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api base url %q: %w", apiBaseURL, err)
	}

	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}

	return fmt.Sprintf("%s://%s/ws", scheme, u.Host), nil
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start launches the connection loop in the background.
func (c *Client) Start() {
	go c.run()
}

// -----------------------------------------------------------------------------

// Stop closes the active connection and suppresses further reconnection.
// Safe to call more than once and with no connection open.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})

	c.mu.Lock()
	if c.conn != nil {
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(Disconnected)
}

// -----------------------------------------------------------------------------

func (c *Client) State() State {
	return State(c.state.Load())
}

func (c *Client) setState(s State) {
	c.state.Store(int32(s))
}

func (c *Client) stopped() bool {
	select {
	case <-c.stopCh:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Connection Loop
// -----------------------------------------------------------------------------

func (c *Client) run() {
	attempts := 0

	for {
		if c.stopped() {
			return
		}

		c.setState(Connecting)
		conn, _, err := c.dialer.Dial(c.URL, nil)
		if err != nil {
			c.setState(Faulted)
			c.Logger.Warning("Push connection to %s failed: %v", c.URL, err)
			attempts++
			if !c.waitReconnect(attempts) {
				return
			}
			continue
		}

		c.mu.Lock()
		if c.stopped() {
			// Stop raced the dial; drop the fresh connection.
			conn.Close()
			c.mu.Unlock()
			return
		}
		c.conn = conn
		c.mu.Unlock()

		c.setState(Connected)
		c.Logger.Info("Push channel connected to %s", c.URL)
		attempts = 0

		if readErr := c.readPump(conn); readErr == nil {
			c.setState(Closing)
		} else {
			c.setState(Faulted)
			if !c.stopped() {
				c.Logger.Warning("%v", readErr)
			}
		}

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		if c.stopped() {
			c.setState(Disconnected)
			return
		}

		attempts++
		if !c.waitReconnect(attempts) {
			return
		}
	}
}

// -----------------------------------------------------------------------------

// waitReconnect sleeps the backoff delay for the given attempt count. It
// returns false when reconnection must stop (explicit Stop or attempt
// ceiling reached).
func (c *Client) waitReconnect(attempts int) bool {
	if c.cfg.MaxAttempts > 0 && attempts > c.cfg.MaxAttempts {
		c.Logger.Error("Push channel giving up after %d reconnect attempts", c.cfg.MaxAttempts)
		c.setState(Disconnected)
		return false
	}

	delay := c.backoff(attempts)
	c.Logger.Info("Push channel reconnecting in %v (attempt %d)", delay, attempts)
	c.setState(Disconnected)

	select {
	case <-c.stopCh:
		return false
	case <-time.After(delay):
		return true
	}
}

// -----------------------------------------------------------------------------

// backoff doubles the base delay per attempt up to the configured ceiling,
// then spreads it with jitter.
func (c *Client) backoff(attempts int) time.Duration {
	base := time.Duration(c.cfg.ReconnectBaseMs) * time.Millisecond
	max := time.Duration(c.cfg.ReconnectMaxMs) * time.Millisecond

	delay := base
	for i := 1; i < attempts && delay < max; i++ {
		delay *= 2
	}
	if delay > max {
		delay = max
	}

	if c.cfg.Jitter > 0 {
		spread := c.cfg.Jitter * (2*rand.Float64() - 1)
		delay = time.Duration(float64(delay) * (1 + spread))
	}

	return delay
}

// -----------------------------------------------------------------------------
// readPump - consumes inbound frames until the connection dies.
// Returns nil for a clean remote close, a TransportError for a fault.
// -----------------------------------------------------------------------------

func (c *Client) readPump(conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Ping keepalive; a silently-dead connection fails the read deadline
	// instead of lingering forever.
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			case <-c.stopCh:
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.Logger.Info("Push channel closed by server")
				return nil
			}
			return helpers.NewTransportError(fmt.Sprintf("push channel fault on %s", c.URL), err)
		}

		c.handleMessage(message)
	}
}

// -----------------------------------------------------------------------------
// Message Handling
// -----------------------------------------------------------------------------

// handleMessage decodes one tagged frame and dispatches it. Decode failures
// are logged and discarded; they never close the connection. Handlers stay
// small so the pump is never blocked on one frame.
func (c *Client) handleMessage(data []byte) {
	var msg models.MPushMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.Logger.Warning("Discarding undecodable push frame: %v", err)
		return
	}

	switch msg.Type {
	case models.PushPositionUpdate:
		var delta models.MPositionDelta
		if err := json.Unmarshal(msg.Data, &delta); err != nil {
			c.Logger.Warning("Discarding bad position_update payload: %v", err)
			return
		}
		if delta.ID == 0 {
			c.Logger.Warning("Discarding position_update without an id")
			return
		}
		c.Sink.UpdatePosition(delta)

	default:
		// Unknown event types must not crash the client; future servers may
		// push more than we understand.
		c.Logger.Debug("Ignoring push event type %q", msg.Type)
	}
}
