package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/voicenotes/internal/conversation"
	"github.com/eleven-am/voicenotes/internal/credential"
	"github.com/eleven-am/voicenotes/internal/monitor"
	"github.com/eleven-am/voicenotes/internal/recognizer"
	"github.com/eleven-am/voicenotes/internal/recorder"
	"github.com/eleven-am/voicenotes/internal/recording"
	"github.com/eleven-am/voicenotes/internal/transcription"
	"go.uber.org/fx"
)

func ProvideRecognizerConfig(cfg *Config) recognizer.Config {
	return recognizer.Config{
		URL:   cfg.RecognizerURL,
		Token: cfg.RecognizerToken,
	}
}

func ProvideRemoteConfig(cfg *Config) transcription.Config {
	return transcription.Config{
		Endpoint: cfg.RemoteEndpoint,
		Model:    cfg.RemoteModel,
		Timeout:  cfg.RemoteTimeout,
	}
}

func ProvideRemoteClient(cfg transcription.Config, logger *slog.Logger) *transcription.Client {
	return transcription.New(cfg, logger.With("component", "remote_transcriber"))
}

// ProvideCaptureFactory wires the per-session capture pipeline: a websocket
// recognizer session feeding a rotating artifact recorder.
func ProvideCaptureFactory(cfg *Config, recognizerCfg recognizer.Config, logger *slog.Logger) recording.CaptureFactory {
	return func(sessionID string, onPartial func(string), onFatal func(error)) (recording.CaptureSession, error) {
		var rec *recorder.Recorder

		client, err := recognizer.New(recognizerCfg, recognizer.SessionOptions{
			Language:   cfg.Language,
			SampleRate: cfg.SampleRate,
			Partials:   true,
		}, recognizer.Callbacks{
			OnPartial: func(text string) {
				if rec != nil {
					rec.HandlePartial(text)
				}
			},
			OnError: func(err error) {
				if rec != nil {
					rec.HandleRecognizerError(err)
				}
			},
		})
		if err != nil {
			return nil, err
		}

		rec, err = recorder.New(recorder.Config{
			Dir:       cfg.ArtifactDir,
			SessionID: sessionID,
			OnPartial: onPartial,
			OnFatal:   onFatal,
			Log:       logger,
		}, client)
		if err != nil {
			client.Close()
			return nil, err
		}
		return rec, nil
	}
}

func ProvideRecordingManager(
	cfg *Config,
	factory recording.CaptureFactory,
	remote *transcription.Client,
	credentials *credential.Store,
	conversations *conversation.Store,
	logger *slog.Logger,
) *recording.Manager {
	return recording.NewManager(recording.ManagerConfig{
		NewCapture:  factory,
		Remote:      remote,
		Credentials: credentials,
		Sink:        conversations,
		Transient:   monitor.DefaultTransientPolicy(),
		Session: recording.Config{
			Language:        cfg.Language,
			SegmentDuration: cfg.SegmentDuration,
			MaxRetries:      cfg.MaxRetries,
			MaxActive:       cfg.MaxActive,
		},
		Log: logger,
	})
}

func DrainOnShutdown(lc fx.Lifecycle, manager *recording.Manager) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			drainCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			manager.Shutdown(drainCtx)
			return nil
		},
	})
}

var PipelineModule = fx.Options(
	fx.Provide(
		ProvideRecognizerConfig,
		ProvideRemoteConfig,
		ProvideRemoteClient,
		ProvideCaptureFactory,
		ProvideRecordingManager,
	),
	fx.Invoke(DrainOnShutdown),
)
