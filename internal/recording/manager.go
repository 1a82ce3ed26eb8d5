package recording

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/voicenotes/internal/connectivity"
	"github.com/eleven-am/voicenotes/internal/credential"
	"github.com/eleven-am/voicenotes/internal/monitor"
	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/eleven-am/voicenotes/internal/transcription"
)

// CaptureFactory builds the capture pipeline for one session. Partials carry
// the recognizer's full transcript so far; a fatal error means capture cannot
// continue and the session must fail.
type CaptureFactory func(sessionID string, onPartial func(text string), onFatal func(err error)) (CaptureSession, error)

// Session bundles one coordinator with the device-state monitors its client
// reports into.
type Session struct {
	coord         *Coordinator
	routes        *monitor.RouteMonitor
	interruptions *monitor.InterruptionMonitor
	network       *connectivity.Monitor
}

func (s *Session) ID() string                  { return s.coord.SessionID() }
func (s *Session) ConversationID() string      { return s.coord.ConversationID() }
func (s *Session) State() State                { return s.coord.State() }
func (s *Session) Status() QueueStatus         { return s.coord.Status() }
func (s *Session) Done() <-chan struct{}       { return s.coord.Done() }
func (s *Session) WriteFrame(b []byte) error   { return s.coord.HandleAudioFrame(b) }
func (s *Session) Stop()                       { s.coord.Stop() }
func (s *Session) Close()                      { s.coord.Close() }

func (s *Session) ReportRoute(evt monitor.RouteEvent) {
	s.routes.Report(evt)
}

func (s *Session) ReportInterruption(evt monitor.InterruptionEvent) {
	s.interruptions.Report(evt)
}

func (s *Session) SetNetwork(available bool) {
	s.network.Set(available)
}

func (s *Session) NetworkAvailable() bool {
	return s.network.Available()
}

type ManagerConfig struct {
	NewCapture  CaptureFactory
	Remote      transcription.Transcriber
	Credentials credential.Source
	Sink        Sink
	Transient   monitor.TransientPolicy
	Session     Config
	Scheduler   Scheduler
	Clock       func() time.Time
	Log         *slog.Logger
}

// Manager tracks live recording sessions and assembles the per-session
// pipeline: capture, device monitors, and the coordinator.
type Manager struct {
	cfg      ManagerConfig
	sessions map[string]*Session
	mu       sync.RWMutex
	log      *slog.Logger
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		log:      cfg.Log.With("component", "recording_manager"),
	}
}

// StartSession creates and starts a recording session for the conversation.
func (m *Manager) StartSession(conversationID string, cb Callbacks) (*Session, error) {
	sessionID := shared.NewID("rec_")

	session := &Session{
		routes:        monitor.NewRouteMonitor(m.log),
		interruptions: monitor.NewInterruptionMonitor(m.cfg.Transient, m.log),
		network:       connectivity.NewMonitor(m.log),
	}

	capture, err := m.cfg.NewCapture(sessionID,
		func(text string) {
			if session.coord != nil {
				session.coord.HandlePartial(text)
			}
		},
		func(err error) {
			if session.coord != nil {
				session.coord.Fail(err)
			}
		})
	if err != nil {
		return nil, err
	}

	cfg := m.cfg.Session
	cfg.SessionID = sessionID
	cfg.ConversationID = conversationID

	session.coord = NewCoordinator(cfg, Deps{
		Capture:       capture,
		Remote:        m.cfg.Remote,
		Credentials:   m.cfg.Credentials,
		Network:       session.network,
		Sink:          m.cfg.Sink,
		Routes:        session.routes,
		Interruptions: session.interruptions,
		Scheduler:     m.cfg.Scheduler,
		Clock:         m.cfg.Clock,
		Callbacks:     cb,
		Log:           m.log,
	})

	if err := session.coord.Start(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sessionID] = session
	m.mu.Unlock()

	go func() {
		<-session.coord.Done()
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		m.log.Info("recording session reaped", "session_id", sessionID)
	}()

	m.log.Info("recording session started", "session_id", sessionID, "conversation_id", conversationID)
	return session, nil
}

func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	return session, ok
}

func (m *Manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown stops every live session and waits for their queues to drain, up
// to the context deadline.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Stop()
	}
	for _, s := range sessions {
		select {
		case <-s.Done():
		case <-ctx.Done():
			s.Close()
		}
	}
}
