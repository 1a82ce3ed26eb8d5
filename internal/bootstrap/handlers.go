package bootstrap

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/eleven-am/voicenotes/docs"
	"github.com/eleven-am/voicenotes/internal/conversation"
	"github.com/eleven-am/voicenotes/internal/credential"
	"github.com/eleven-am/voicenotes/internal/gateway"
	"github.com/eleven-am/voicenotes/internal/recording"
	"github.com/eleven-am/voicenotes/internal/sessionstore"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideConversationHandler(store *conversation.Store, logger *slog.Logger) *conversation.Handler {
	return conversation.NewHandler(store, logger.With("handler", "conversation"))
}

func ProvideCredentialHandler(store *credential.Store, logger *slog.Logger) *credential.Handler {
	return credential.NewHandler(store, logger.With("handler", "credential"))
}

func ProvideGatewayHandler(
	manager *recording.Manager,
	conversations *conversation.Store,
	live *sessionstore.Store,
	logger *slog.Logger,
) *gateway.Handler {
	return gateway.NewHandler(manager, conversations, live, logger.With("handler", "gateway"))
}

type HandlerParams struct {
	fx.In

	ConversationHandler *conversation.Handler
	CredentialHandler   *credential.Handler
	GatewayHandler      *gateway.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/api/v1")

	params.ConversationHandler.RegisterRoutes(api.Group("/conversations"))
	params.CredentialHandler.RegisterRoutes(api.Group("/credentials/transcription"))

	recordingGroup := api.Group("/recording")
	params.GatewayHandler.RegisterRoutes(recordingGroup)
	params.GatewayHandler.RegisterRESTRoutes(recordingGroup)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
	e.GET("/asyncapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", docs.AsyncAPISpec)
	})
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideConversationHandler,
		ProvideCredentialHandler,
		ProvideGatewayHandler,
	),
	fx.Invoke(RegisterRoutes),
)
