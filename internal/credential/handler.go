package credential

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
	g.GET("", h.Inspect)
	g.PUT("", h.Set)
	g.DELETE("", h.Clear)
}

func credentialToResponse(cred *Credential) dto.CredentialResponse {
	return dto.CredentialResponse{
		Provider:   cred.Provider,
		MaskedKey:  cred.Masked(),
		Configured: cred.IsUsable(),
		UpdatedAt:  cred.UpdatedAt.Format(time.RFC3339),
	}
}

// Inspect godoc
// @Summary      Inspect the cloud transcription credential
// @Description  Returns the masked key and whether a usable credential is configured
// @Tags         credentials
// @Produce      json
// @Success      200  {object}  dto.CredentialResponse
// @Failure      500  {object}  shared.APIError
// @Router       /credentials/transcription [get]
func (h *Handler) Inspect(c echo.Context) error {
	cred, err := h.store.Get(c.Request().Context(), ProviderCloudTranscription)
	if errors.Is(err, shared.ErrNotFound) {
		return c.JSON(http.StatusOK, dto.CredentialResponse{
			Provider:   ProviderCloudTranscription,
			Configured: false,
		})
	}
	if err != nil {
		h.logger.Error("failed to load credential", "error", err)
		return shared.InternalError("credential_load_failed", "failed to load credential")
	}

	return c.JSON(http.StatusOK, credentialToResponse(cred))
}

// Set godoc
// @Summary      Set the cloud transcription credential
// @Description  Stores or replaces the API key used for remote transcription
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SetCredentialRequest  true  "API key"
// @Success      200      {object}  dto.CredentialResponse
// @Failure      400      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /credentials/transcription [put]
func (h *Handler) Set(c echo.Context) error {
	var req dto.SetCredentialRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Key == "" {
		return shared.NewAPIError("key_required", "key is required").
			WithSuggestion("use DELETE to remove a configured credential").
			ToHTTP(http.StatusBadRequest)
	}

	cred, err := h.store.Set(c.Request().Context(), ProviderCloudTranscription, req.Key)
	if err != nil {
		h.logger.Error("failed to store credential", "error", err)
		return shared.InternalError("credential_store_failed", "failed to store credential")
	}

	h.logger.Info("cloud transcription credential updated", "usable", cred.IsUsable())
	return c.JSON(http.StatusOK, credentialToResponse(cred))
}

// Clear godoc
// @Summary      Remove the cloud transcription credential
// @Description  Deletes the stored API key; new segments route to on-device transcription
// @Tags         credentials
// @Success      204  "credential removed"
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /credentials/transcription [delete]
func (h *Handler) Clear(c echo.Context) error {
	err := h.store.Clear(c.Request().Context(), ProviderCloudTranscription)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("credential_not_found", "no credential configured")
	}
	if err != nil {
		h.logger.Error("failed to clear credential", "error", err)
		return shared.InternalError("credential_clear_failed", "failed to clear credential")
	}

	h.logger.Info("cloud transcription credential cleared")
	return c.NoContent(http.StatusNoContent)
}
