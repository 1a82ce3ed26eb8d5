package connectivity

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Source is the read side the transcription pipeline depends on. Decisions snapshot
// availability once per call so a mid-decision transition cannot tear state.
type Source interface {
	Available() bool
}

type Status struct {
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}

// Monitor holds the current network reachability flag. The device gateway writes it
// from client reports; an optional probe loop refreshes it server-side.
type Monitor struct {
	mu        sync.RWMutex
	available bool
	subs      []chan Status
	log       *slog.Logger
}

func NewMonitor(log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{
		available: true,
		log:       log.With("component", "connectivity"),
	}
}

func (m *Monitor) Available() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.available
}

// Set records a reachability transition and notifies subscribers on change.
func (m *Monitor) Set(available bool) {
	m.mu.Lock()
	changed := m.available != available
	m.available = available
	subs := make([]chan Status, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	if !changed {
		return
	}

	m.log.Info("connectivity changed", "available", available)
	status := Status{Available: available, Timestamp: time.Now()}
	for _, ch := range subs {
		select {
		case ch <- status:
		default:
			m.log.Warn("connectivity subscriber full, dropping update")
		}
	}
}

func (m *Monitor) Subscribe() (<-chan Status, func()) {
	ch := make(chan Status, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subs {
			if sub == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// ProbeConfig drives the optional server-side reachability loop.
type ProbeConfig struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

// RunProbe polls the configured URL until ctx is cancelled, feeding results into
// the monitor. Client reports still win between polls; the probe only catches the
// case where the device lies or goes silent.
func (m *Monitor) RunProbe(ctx context.Context, cfg ProbeConfig) {
	if cfg.URL == "" {
		return
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	client := &http.Client{Timeout: cfg.Timeout}
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, cfg.URL, nil)
			if err != nil {
				continue
			}
			resp, err := client.Do(req)
			if err != nil {
				m.Set(false)
				continue
			}
			resp.Body.Close()
			m.Set(resp.StatusCode < 500)
		}
	}
}
