package monitor

import (
	"log/slog"
	"sync"
	"time"
)

const subscriberBuffer = 16

// RouteMonitor tracks the active audio route and fans route-change events out to
// subscribers. Events are injected by whatever surface hears about them (the device
// gateway in production, tests directly), so consumers never depend on a platform
// notification mechanism.
type RouteMonitor struct {
	mu     sync.Mutex
	input  string
	output string
	subs   []chan RouteEvent
	log    *slog.Logger
}

func NewRouteMonitor(log *slog.Logger) *RouteMonitor {
	if log == nil {
		log = slog.Default()
	}
	return &RouteMonitor{log: log.With("component", "route_monitor")}
}

// Subscribe returns a channel of future route events. The returned cancel func must
// be called when the subscriber goes away.
func (m *RouteMonitor) Subscribe() (<-chan RouteEvent, func()) {
	ch := make(chan RouteEvent, subscriberBuffer)
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

// Report records a route transition and notifies subscribers. A slow subscriber
// drops events rather than blocking the reporter.
func (m *RouteMonitor) Report(evt RouteEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	if evt.Reason == "" {
		evt.Reason = RouteUnknown
	}

	m.mu.Lock()
	m.input = evt.InputName
	m.output = evt.OutputName
	subs := make([]chan RouteEvent, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.log.Info("audio route changed", "reason", evt.Reason, "input", evt.InputName, "output", evt.OutputName)

	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
			m.log.Warn("route subscriber full, dropping event")
		}
	}
}

// ActiveRoute returns the last reported input/output device names.
func (m *RouteMonitor) ActiveRoute() (input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.input, m.output
}
