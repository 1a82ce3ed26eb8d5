package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/eleven-am/voicenotes/internal/dto"
	"github.com/eleven-am/voicenotes/internal/sessionstore"
	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/labstack/echo/v4"
)

func (h *Handler) RegisterRESTRoutes(g *echo.Group) {
	g.GET("/sessions", h.ListSessions)
	g.GET("/sessions/:id/status", h.SessionStatus)
}

func liveToResponse(sess *sessionstore.LiveSession) dto.RecordingSessionResponse {
	return dto.RecordingSessionResponse{
		SessionID:      sess.ID,
		ConversationID: sess.ConversationID,
		State:          string(sess.Status),
		QueueStatus:    sess.QueueStatus,
		QueueCount:     sess.QueueCount,
		StartedAt:      sess.StartedAt.Format(time.RFC3339),
	}
}

// ListSessions godoc
// @Summary      List recording sessions
// @Description  Returns all known recording sessions, live and recently finished
// @Tags         recording
// @Produce      json
// @Success      200  {object}  dto.RecordingListResponse
// @Failure      500  {object}  shared.APIError
// @Router       /recording/sessions [get]
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.live.ListSessions(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list sessions", "error", err)
		return shared.InternalError("list_failed", "failed to list recording sessions")
	}

	response := dto.RecordingListResponse{
		Total:    len(sessions),
		Sessions: make([]dto.RecordingSessionResponse, len(sessions)),
	}
	for i, sess := range sessions {
		response.Sessions[i] = liveToResponse(sess)
	}
	return c.JSON(http.StatusOK, response)
}

// SessionStatus godoc
// @Summary      Get a session's queue status
// @Description  Returns the transcription queue status; live sessions answer from the in-process pipeline, finished ones from the persisted descriptor
// @Tags         recording
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  dto.QueueStatusResponse
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /recording/sessions/{id}/status [get]
func (h *Handler) SessionStatus(c echo.Context) error {
	id := c.Param("id")

	if sess, ok := h.manager.GetSession(id); ok {
		status := sess.Status()
		return c.JSON(http.StatusOK, dto.QueueStatusResponse{
			Status: string(status.Kind),
			Count:  status.Count,
		})
	}

	sess, err := h.live.GetSession(c.Request().Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("session_not_found", "recording session not found")
	}
	if err != nil {
		h.logger.Error("failed to load session", "error", err, "session_id", id)
		return shared.InternalError("load_failed", "failed to load recording session")
	}

	return c.JSON(http.StatusOK, dto.QueueStatusResponse{
		Status: sess.QueueStatus,
		Count:  sess.QueueCount,
	})
}
