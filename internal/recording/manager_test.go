package recording

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestManager(t *testing.T, capture *fakeCapture, sink *fakeSink) (*Manager, *fakeCreds) {
	t.Helper()
	creds := &fakeCreds{key: "sk-test", ok: true}
	return NewManager(ManagerConfig{
		NewCapture: func(sessionID string, onPartial func(string), onFatal func(error)) (CaptureSession, error) {
			capture.onPartial = onPartial
			return capture, nil
		},
		Remote:      &fakeRemote{},
		Credentials: creds,
		Sink:        sink,
		Session:     Config{TickInterval: time.Hour},
		Scheduler:   &fakeScheduler{},
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), creds
}

func TestManager_SessionLifecycle(t *testing.T) {
	capture := &fakeCapture{}
	sink := &fakeSink{}
	m, _ := newTestManager(t, capture, sink)

	s, err := m.StartSession("conv_1", Callbacks{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if s.ConversationID() != "conv_1" {
		t.Errorf("conversation_id = %q", s.ConversationID())
	}
	if m.ActiveSessions() != 1 {
		t.Fatalf("active = %d, want 1", m.ActiveSessions())
	}
	if _, ok := m.GetSession(s.ID()); !ok {
		t.Fatal("session not registered")
	}

	// partials from the capture pipeline reach the coordinator
	capture.onPartial("hello from capture")
	s.Stop()

	waitUntil(t, "record", func() bool { return len(sink.records()) == 1 })

	waitUntil(t, "session reaped", func() bool { return m.ActiveSessions() == 0 })
	if _, ok := m.GetSession(s.ID()); ok {
		t.Fatal("session still registered after done")
	}
}

func TestManager_CaptureFactoryError(t *testing.T) {
	m := NewManager(ManagerConfig{
		NewCapture: func(string, func(string), func(error)) (CaptureSession, error) {
			return nil, errors.New("microphone unavailable")
		},
		Remote:      &fakeRemote{},
		Credentials: &fakeCreds{},
		Sink:        &fakeSink{},
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	if _, err := m.StartSession("conv_1", Callbacks{}); err == nil {
		t.Fatal("expected factory error")
	}
	if m.ActiveSessions() != 0 {
		t.Fatalf("active = %d after failed start", m.ActiveSessions())
	}
}

func TestManager_ShutdownDrainsSessions(t *testing.T) {
	capture := &fakeCapture{}
	sink := &fakeSink{}
	m, _ := newTestManager(t, capture, sink)

	s, err := m.StartSession("conv_1", Callbacks{})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Shutdown(ctx)

	select {
	case <-s.Done():
	default:
		t.Fatal("session not finished after shutdown")
	}
}
