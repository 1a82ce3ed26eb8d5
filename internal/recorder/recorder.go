package recorder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/eleven-am/voicenotes/internal/recognizer"
	"github.com/eleven-am/voicenotes/internal/shared"
)

// Recorder owns the raw capture session for one recording: every incoming audio
// frame is appended to the current segment's artifact file and forwarded to the
// local recognizer. Artifacts rotate on segment cuts so each closed segment has a
// bounded file of its own.
type Recorder struct {
	dir       string
	sessionID string
	rec       recognizer.Recognizer
	log       *slog.Logger

	onPartial func(text string)
	onFatal   func(err error)

	mu        sync.Mutex
	file      *os.File
	path      string
	written   int64
	seq       int
	restarted bool
	stopped   bool
}

type Config struct {
	Dir       string
	SessionID string
	OnPartial func(text string)
	OnFatal   func(err error)
	Log       *slog.Logger
}

// NewRecorderFunc builds a recorder plus its recognizer; the indirection keeps the
// pipeline wiring testable without a live sidecar.
type NewRecorderFunc func(cfg Config) (*Recorder, error)

func New(cfg Config, rec recognizer.Recognizer) (*Recorder, error) {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Dir == "" {
		cfg.Dir = os.TempDir()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	return &Recorder{
		dir:       cfg.Dir,
		sessionID: cfg.SessionID,
		rec:       rec,
		log:       cfg.Log.With("component", "recorder", "session_id", cfg.SessionID),
		onPartial: cfg.OnPartial,
		onFatal:   cfg.OnFatal,
	}, nil
}

// Start opens the first segment artifact.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		return fmt.Errorf("recorder already started")
	}
	return r.openArtifactLocked()
}

func (r *Recorder) openArtifactLocked() error {
	r.seq++
	path := filepath.Join(r.dir, fmt.Sprintf("%s_%04d.raw", r.sessionID, r.seq))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		r.file = nil
		r.path = ""
		return fmt.Errorf("open artifact: %w", err)
	}
	r.file = f
	r.path = path
	r.written = 0
	return nil
}

// WriteFrame appends one audio frame to the artifact and streams it to the
// recognizer. A recognizer send failure is not fatal to capture; a capture write
// failure leaves the segment without an artifact.
func (r *Recorder) WriteFrame(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return fmt.Errorf("recorder stopped")
	}

	if r.file != nil {
		if n, err := r.file.Write(frame); err != nil {
			r.log.Error("artifact write failed", "error", err)
			r.file.Close()
			r.file = nil
			r.written = 0
		} else {
			r.written += int64(n)
		}
	}

	if err := r.rec.SendAudio(frame); err != nil {
		r.log.Warn("recognizer send failed", "error", err)
	}
	return nil
}

// CutArtifact closes the current segment's artifact and opens the next one.
// Returns the closed artifact's path, or shared.ErrNoArtifact when capture
// produced nothing for the segment.
func (r *Recorder) CutArtifact() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cutLocked()
}

func (r *Recorder) cutLocked() (string, error) {
	path, written := r.path, r.written
	if r.file != nil {
		r.file.Close()
	}

	if err := r.openArtifactLocked(); err != nil {
		r.log.Error("failed to open next artifact", "error", err)
	}

	if path == "" || written == 0 {
		if path != "" {
			os.Remove(path)
		}
		return "", shared.ErrNoArtifact
	}
	return path, nil
}

// Stop closes the capture session and the recognizer stream. The final artifact
// path is returned so the last segment can still be routed.
func (r *Recorder) Stop() (string, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return "", fmt.Errorf("recorder already stopped")
	}
	r.stopped = true

	path, written := r.path, r.written
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
	r.mu.Unlock()

	if err := r.rec.Close(); err != nil {
		r.log.Warn("recognizer close failed", "error", err)
	}

	if path == "" || written == 0 {
		if path != "" {
			os.Remove(path)
		}
		return "", shared.ErrNoArtifact
	}
	return path, nil
}

// HandlePartial forwards recognizer partials to the pipeline.
func (r *Recorder) HandlePartial(text string) {
	if r.onPartial != nil {
		r.onPartial(text)
	}
}

// HandleRecognizerError implements the restart-once policy: the first internal
// error triggers an automatic recognizer restart; a second error, or a failed
// restart, is fatal to the recording session.
func (r *Recorder) HandleRecognizerError(err error) {
	r.mu.Lock()
	alreadyRestarted := r.restarted
	r.restarted = true
	stopped := r.stopped
	r.mu.Unlock()

	if stopped {
		return
	}

	if alreadyRestarted {
		r.log.Error("recognizer failed after restart", "error", err)
		r.fatal(fmt.Errorf("recognizer failed after restart: %w", err))
		return
	}

	r.log.Warn("recognizer error, attempting restart", "error", err)
	if restartErr := r.rec.Restart(); restartErr != nil {
		r.log.Error("recognizer restart failed", "error", restartErr)
		r.fatal(fmt.Errorf("recognizer restart failed: %w", restartErr))
	}
}

func (r *Recorder) fatal(err error) {
	if r.onFatal != nil {
		r.onFatal(err)
	}
}
