package conversation

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/voicenotes/internal/dto"
	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Rename)
	g.DELETE("/:id", h.Delete)
}

func conversationToResponse(conv Conversation, count int) dto.ConversationResponse {
	return dto.ConversationResponse{
		ID:           conv.ID,
		Title:        conv.Title,
		MessageCount: count,
		CreatedAt:    conv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    conv.UpdatedAt.Format(time.RFC3339),
	}
}

func messageToResponse(msg Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:              msg.ID,
		Text:            msg.Text,
		Source:          msg.Source,
		DurationSeconds: float64(msg.DurationMS) / 1000,
		Seq:             msg.Seq,
		CreatedAt:       msg.CreatedAt.Format(time.RFC3339),
	}
}

// List godoc
// @Summary      List conversations
// @Description  Returns all conversations, most recently updated first
// @Tags         conversations
// @Produce      json
// @Success      200  {object}  dto.ConversationListResponse
// @Failure      500  {object}  shared.APIError
// @Router       /conversations [get]
func (h *Handler) List(c echo.Context) error {
	listed, err := h.store.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err)
		return shared.InternalError("list_failed", "failed to list conversations")
	}

	response := make([]dto.ConversationResponse, len(listed))
	for i, l := range listed {
		response[i] = conversationToResponse(l.Conversation, l.MessageCount)
	}
	return c.JSON(http.StatusOK, dto.ConversationListResponse{Conversations: response})
}

// Create godoc
// @Summary      Create a conversation
// @Description  Creates an empty conversation; the title may be left blank to be derived from the first note
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RenameConversationRequest  false  "Optional title"
// @Success      201      {object}  dto.ConversationResponse
// @Failure      500      {object}  shared.APIError
// @Router       /conversations [post]
func (h *Handler) Create(c echo.Context) error {
	var req dto.RenameConversationRequest
	_ = c.Bind(&req)

	conv, err := h.store.Create(c.Request().Context(), req.Title)
	if err != nil {
		h.logger.Error("failed to create conversation", "error", err)
		return shared.InternalError("create_failed", "failed to create conversation")
	}

	h.logger.Info("conversation created", "conversation_id", conv.ID)
	return c.JSON(http.StatusCreated, conversationToResponse(*conv, 0))
}

// Get godoc
// @Summary      Get a conversation with its transcript
// @Description  Returns the conversation and its messages in chronological order
// @Tags         conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  dto.ConversationDetailResponse
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /conversations/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	conv, err := h.store.GetByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("conversation_not_found", "conversation not found")
	}
	if err != nil {
		h.logger.Error("failed to load conversation", "error", err, "conversation_id", id)
		return shared.InternalError("load_failed", "failed to load conversation")
	}

	msgs, err := h.store.Messages(ctx, id)
	if err != nil {
		h.logger.Error("failed to load messages", "error", err, "conversation_id", id)
		return shared.InternalError("load_failed", "failed to load messages")
	}

	response := dto.ConversationDetailResponse{
		Conversation: conversationToResponse(*conv, len(msgs)),
		Messages:     make([]dto.MessageResponse, len(msgs)),
	}
	for i, msg := range msgs {
		response.Messages[i] = messageToResponse(msg)
	}
	return c.JSON(http.StatusOK, response)
}

// Rename godoc
// @Summary      Rename a conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Conversation ID"
// @Param        request  body      dto.RenameConversationRequest  true  "New title"
// @Success      200      {object}  dto.ConversationResponse
// @Failure      400      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /conversations/{id} [patch]
func (h *Handler) Rename(c echo.Context) error {
	var req dto.RenameConversationRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Title == "" {
		return shared.BadRequest("title_required", "title is required")
	}

	conv, err := h.store.Rename(c.Request().Context(), c.Param("id"), req.Title)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("conversation_not_found", "conversation not found")
	}
	if err != nil {
		h.logger.Error("failed to rename conversation", "error", err)
		return shared.InternalError("rename_failed", "failed to rename conversation")
	}

	return c.JSON(http.StatusOK, conversationToResponse(*conv, 0))
}

// Delete godoc
// @Summary      Delete a conversation and its transcript
// @Tags         conversations
// @Param        id   path  string  true  "Conversation ID"
// @Success      204  "conversation deleted"
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /conversations/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	err := h.store.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("conversation_not_found", "conversation not found")
	}
	if err != nil {
		h.logger.Error("failed to delete conversation", "error", err)
		return shared.InternalError("delete_failed", "failed to delete conversation")
	}

	h.logger.Info("conversation deleted", "conversation_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
