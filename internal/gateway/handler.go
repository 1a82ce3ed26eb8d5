package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eleven-am/voicenotes/internal/conversation"
	"github.com/eleven-am/voicenotes/internal/dto"
	"github.com/eleven-am/voicenotes/internal/monitor"
	"github.com/eleven-am/voicenotes/internal/recording"
	"github.com/eleven-am/voicenotes/internal/sessionstore"
	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	manager       *recording.Manager
	conversations *conversation.Store
	live          *sessionstore.Store
	logger        *slog.Logger
}

func NewHandler(manager *recording.Manager, conversations *conversation.Store, live *sessionstore.Store, logger *slog.Logger) *Handler {
	return &Handler{
		manager:       manager,
		conversations: conversations,
		live:          live,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.handleWebSocket)
}

// handleWebSocket godoc
// @Summary      Recording websocket
// @Description  Upgrades to a websocket carrying JSON control frames and binary audio; the server streams partials, finalized records, and queue status back
// @Tags         recording
// @Router       /recording/ws [get]
func (h *Handler) handleWebSocket(c echo.Context) error {
	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	conn := newConn(ws, h.logger)
	h.logger.Info("client connected")

	go conn.writePump()
	go conn.readPump()
	h.serve(conn)

	h.logger.Info("client disconnected")
	return nil
}

// serve runs the per-connection control loop. One recording session is active
// per connection at a time; a disconnect stops recording but lets queued jobs
// finish server-side.
func (h *Handler) serve(conn *Conn) {
	var session *recording.Session
	defer func() {
		if session != nil {
			session.Stop()
		}
	}()

	for frame := range conn.Frames() {
		if frame.Audio != nil {
			if session == nil {
				continue
			}
			if err := session.WriteFrame(frame.Audio); err != nil {
				h.logger.Error("failed to write audio frame", "error", err, "session_id", session.ID())
			}
			continue
		}

		msg := frame.Control
		switch msg.Type {
		case ClientStart:
			if session != nil {
				conn.Send(&ServerMessage{Type: ServerError, Code: "already_recording", Message: "a recording session is already active"})
				continue
			}
			session = h.startSession(conn, msg.ConversationID)

		case ClientStop:
			if session == nil {
				continue
			}
			session.Stop()
			session = nil

		case ClientRouteChange:
			if session == nil {
				continue
			}
			session.ReportRoute(monitor.RouteEvent{
				Reason:     monitor.RouteChangeReason(msg.Reason),
				InputName:  msg.InputName,
				OutputName: msg.OutputName,
				Timestamp:  time.Now(),
			})

		case ClientInterruption:
			if session == nil {
				continue
			}
			session.ReportInterruption(monitor.InterruptionEvent{
				Phase:     monitor.InterruptionPhase(msg.Phase),
				Type:      monitor.InterruptionType(msg.InterruptionType),
				Hint:      msg.Hint,
				Timestamp: time.Now(),
			})

		case ClientNetwork:
			if session == nil || msg.Available == nil {
				continue
			}
			session.SetNetwork(*msg.Available)

		default:
			h.logger.Warn("unknown control frame", "type", msg.Type)
		}
	}
}

func (h *Handler) startSession(conn *Conn, conversationID string) *recording.Session {
	ctx := context.Background()

	if conversationID == "" {
		conv, err := h.conversations.Create(ctx, "")
		if err != nil {
			h.logger.Error("failed to create conversation", "error", err)
			conn.Send(&ServerMessage{Type: ServerError, Code: "conversation_create_failed", Message: "failed to create conversation"})
			return nil
		}
		conversationID = conv.ID
	} else if _, err := h.conversations.GetByID(ctx, conversationID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			conn.Send(&ServerMessage{Type: ServerError, Code: "conversation_not_found", Message: "conversation not found"})
		} else {
			h.logger.Error("failed to load conversation", "error", err)
			conn.Send(&ServerMessage{Type: ServerError, Code: "conversation_load_failed", Message: "failed to load conversation"})
		}
		return nil
	}

	session, err := h.manager.StartSession(conversationID, recording.Callbacks{
		OnPartial: func(sessionID, text string) {
			conn.Send(&ServerMessage{Type: ServerPartial, SessionID: sessionID, Text: text})
		},
		OnStatus: func(sessionID string, status recording.QueueStatus) {
			conn.Send(&ServerMessage{
				Type:      ServerQueueStatus,
				SessionID: sessionID,
				Status:    string(status.Kind),
				Count:     status.Count,
			})
			go func() {
				if err := h.live.UpdateQueue(context.Background(), sessionID, string(status.Kind), status.Count); err != nil && !errors.Is(err, shared.ErrNotFound) {
					h.logger.Error("failed to persist queue status", "error", err, "session_id", sessionID)
				}
			}()
		},
		OnRecord: func(rec recording.Record) {
			conn.Send(&ServerMessage{
				Type:           ServerRecord,
				SessionID:      rec.SessionID,
				ConversationID: rec.ConversationID,
				Record: &dto.MessageResponse{
					ID:              rec.ID,
					Text:            rec.Text,
					Source:          string(rec.Source),
					DurationSeconds: rec.Duration.Seconds(),
					Seq:             rec.Seq,
					CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
				},
			})
			go h.countRecord(rec)
		},
		OnError: func(sessionID string, err error) {
			conn.Send(&ServerMessage{Type: ServerError, SessionID: sessionID, Code: "recording_failed", Message: err.Error()})
			go h.live.IncrementErrors(context.Background())
		},
	})
	if err != nil {
		h.logger.Error("failed to start recording session", "error", err)
		conn.Send(&ServerMessage{Type: ServerError, Code: "session_start_failed", Message: "failed to start recording"})
		return nil
	}

	if err := h.live.CreateSession(ctx, &sessionstore.LiveSession{
		ID:             session.ID(),
		ConversationID: conversationID,
	}); err != nil {
		h.logger.Error("failed to persist live session", "error", err, "session_id", session.ID())
	}

	conn.Send(&ServerMessage{
		Type:           ServerSessionStarted,
		SessionID:      session.ID(),
		ConversationID: conversationID,
	})

	go func() {
		<-session.Done()
		conn.Send(&ServerMessage{Type: ServerSessionEnded, SessionID: session.ID()})
		if err := h.live.EndSession(context.Background(), session.ID(), sessionstore.StatusFinished); err != nil && !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("failed to finalize live session", "error", err, "session_id", session.ID())
		}
	}()

	return session
}

func (h *Handler) countRecord(rec recording.Record) {
	ctx := context.Background()
	var err error
	if rec.Source == recording.SourceRemote {
		err = h.live.IncrementRemoteRecords(ctx)
	} else {
		err = h.live.IncrementLocalRecords(ctx)
	}
	if err != nil {
		h.logger.Error("failed to bump record metric", "error", err, "source", rec.Source)
	}
}
