package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/gorilla/websocket"
)

const dialTimeout = 10 * time.Second

// Client streams PCM frames to the recognizer sidecar over a websocket and
// surfaces partial transcripts through Callbacks.
type Client struct {
	url     string
	token   string
	opts    SessionOptions
	cb      Callbacks
	backoff shared.BackoffConfig

	mu      sync.RWMutex
	conn    *websocket.Conn
	readyCh chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

type clientMessage struct {
	Type       string `json:"type"`
	Language   string `json:"language,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
	Partials   bool   `json:"partials,omitempty"`
}

type serverMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

func New(cfg Config, opts SessionOptions, cb Callbacks) (*Client, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.SampleRate <= 0 {
		opts.SampleRate = 16000
	}

	c := &Client{
		url:     cfg.URL,
		token:   cfg.Token,
		opts:    opts,
		cb:      cb,
		backoff: normalizeBackoff(cfg.Backoff),
		ctx:     ctx,
		cancel:  cancel,
	}

	if err := c.connectAndStart(); err != nil {
		cancel()
		return nil, err
	}
	return c, nil
}

func (c *Client) connectAndStart() error {
	slog.Info("recognizer connecting", "url", c.url)

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(c.ctx, c.url, header)
	if err != nil {
		slog.Error("recognizer dial failed", "error", err)
		return fmt.Errorf("dial recognizer: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.readyCh = make(chan struct{})
	c.mu.Unlock()

	if err := c.sendConfig(); err != nil {
		conn.Close()
		return err
	}

	go c.readLoop(conn)
	return nil
}

func (c *Client) sendConfig() error {
	return c.writeJSON(clientMessage{
		Type:       "config",
		Language:   c.opts.Language,
		SampleRate: c.opts.SampleRate,
		Partials:   c.opts.Partials,
	})
}

func (c *Client) writeJSON(msg clientMessage) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("recognizer not connected")
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// SendAudio forwards one PCM frame to the recognizer.
func (c *Client) SendAudio(frame []byte) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("recognizer not connected")
	}
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}

// WaitReady blocks until the sidecar acknowledges the session config.
func (c *Client) WaitReady(ctx context.Context) bool {
	c.mu.RLock()
	ch := c.readyCh
	c.mu.RUnlock()
	select {
	case <-ch:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.ctx.Done():
				return
			default:
			}
			c.mu.RLock()
			replaced := c.conn != conn
			c.mu.RUnlock()
			if replaced {
				// a restart swapped this connection out; its teardown is not a failure
				return
			}
			slog.Error("recognizer read error", "error", err)
			if c.cb.OnError != nil {
				c.cb.OnError(err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("recognizer sent malformed message", "error", err)
			continue
		}

		switch msg.Type {
		case "ready":
			c.mu.RLock()
			ch := c.readyCh
			c.mu.RUnlock()
			select {
			case <-ch:
			default:
				close(ch)
			}
			if c.cb.OnReady != nil {
				c.cb.OnReady()
			}
		case "partial", "final":
			if c.cb.OnPartial != nil {
				c.cb.OnPartial(msg.Text)
			}
		case "error":
			if c.cb.OnError != nil {
				c.cb.OnError(fmt.Errorf("recognizer error: %s", msg.Message))
			}
			// OnError may restart the client, closing this connection; stop
			// reading before the teardown surfaces as a second error
			return
		}
	}
}

// Restart tears down the current connection and redials with backoff. Used for the
// single automatic restart after a recognizer internal error.
func (c *Client) Restart() error {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	cfg := c.backoff
	backoff := cfg.Initial

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		default:
		}

		if lastErr = c.connectAndStart(); lastErr == nil {
			slog.Info("recognizer restarted", "attempts", attempt+1)
			return nil
		}

		slog.Warn("recognizer restart attempt failed",
			"attempt", attempt+1,
			"max_attempts", cfg.MaxAttempts,
			"error", lastErr)

		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		case <-time.After(backoff):
		}
		backoff = minDuration(backoff*2, cfg.MaxDelay)
	}

	return fmt.Errorf("recognizer restart failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

func (c *Client) Close() error {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

func normalizeBackoff(cfg shared.BackoffConfig) shared.BackoffConfig {
	if cfg.Initial <= 0 {
		cfg.Initial = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 2 * time.Second
	}
	return cfg
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
