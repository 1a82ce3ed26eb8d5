package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Conn wraps one client websocket. Frames flow out of the read pump on a
// buffered channel; server events go through Send, which drops rather than
// blocks when the client cannot keep up.
type Conn struct {
	ws     *websocket.Conn
	logger *slog.Logger
	send   chan *ServerMessage
	frames chan Frame
	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newConn(ws *websocket.Conn, logger *slog.Logger) *Conn {
	return &Conn{
		ws:     ws,
		logger: logger,
		send:   make(chan *ServerMessage, 128),
		frames: make(chan Frame, 256),
		done:   make(chan struct{}),
	}
}

func (c *Conn) Frames() <-chan Frame {
	return c.frames
}

// Send is safe to call from pipeline callbacks at any point in the connection's
// life: the send channel is never closed, so a Send racing Close just lands on
// a channel nobody drains.
func (c *Conn) Send(msg *ServerMessage) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		c.logger.Warn("send buffer full, dropping server event", "type", msg.Type)
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	return c.ws.Close()
}

func (c *Conn) readPump() {
	defer func() {
		c.Close()
		close(c.frames)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.done:
			return
		default:
		}

		msgType, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket read error", "error", err)
			}
			return
		}

		var frame Frame
		switch msgType {
		case websocket.BinaryMessage:
			frame.Audio = message
		case websocket.TextMessage:
			var msg ClientMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				c.logger.Error("failed to unmarshal control frame", "error", err)
				continue
			}
			frame.Control = &msg
		default:
			continue
		}

		select {
		case c.frames <- frame:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(msg)
			if err != nil {
				c.logger.Error("failed to marshal server event", "error", err)
				continue
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
