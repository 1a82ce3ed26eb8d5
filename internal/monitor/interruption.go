package monitor

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// TransientPolicy decides whether an interruption is brief enough to ride out
// without stopping the recording session. The signals are checked in priority
// order: explicit interruption type, then a textual hint, then reported duration.
// Absence of every signal means a full interruption.
type TransientPolicy struct {
	TransientTypes []InterruptionType
	HintSubstrings []string
	MaxDuration    time.Duration
}

func DefaultTransientPolicy() TransientPolicy {
	return TransientPolicy{
		TransientTypes: []InterruptionType{InterruptionTypeDuckOthers, InterruptionTypeBeginOtherAudio},
		HintSubstrings: []string{"assistant", "siri"},
		MaxDuration:    10 * time.Second,
	}
}

// IsTransient classifies an interruption-began event. First matching signal decides.
func (p TransientPolicy) IsTransient(evt InterruptionEvent) bool {
	for _, t := range p.TransientTypes {
		if evt.Type == t {
			return true
		}
	}
	if evt.Hint != "" {
		hint := strings.ToLower(evt.Hint)
		for _, sub := range p.HintSubstrings {
			if strings.Contains(hint, sub) {
				return true
			}
		}
	}
	if evt.Duration > 0 && p.MaxDuration > 0 && evt.Duration < p.MaxDuration {
		return true
	}
	return false
}

// InterruptionMonitor tracks session interruption begin/end events and fans them
// out to subscribers, tagging each begin event with the policy's classification.
type InterruptionMonitor struct {
	policy TransientPolicy

	mu      sync.Mutex
	active  bool
	beganAt time.Time
	subs    []chan ClassifiedInterruption
	log     *slog.Logger
}

type ClassifiedInterruption struct {
	Event     InterruptionEvent
	Transient bool
}

func NewInterruptionMonitor(policy TransientPolicy, log *slog.Logger) *InterruptionMonitor {
	if log == nil {
		log = slog.Default()
	}
	if len(policy.TransientTypes) == 0 && len(policy.HintSubstrings) == 0 && policy.MaxDuration == 0 {
		policy = DefaultTransientPolicy()
	}
	return &InterruptionMonitor{
		policy: policy,
		log:    log.With("component", "interruption_monitor"),
	}
}

func (m *InterruptionMonitor) Subscribe() (<-chan ClassifiedInterruption, func()) {
	ch := make(chan ClassifiedInterruption, subscriberBuffer)
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

func (m *InterruptionMonitor) Report(evt InterruptionEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	m.mu.Lock()
	switch evt.Phase {
	case InterruptionBegan:
		m.active = true
		m.beganAt = evt.Timestamp
	case InterruptionEnded:
		if m.active && evt.Duration == 0 {
			evt.Duration = evt.Timestamp.Sub(m.beganAt)
		}
		m.active = false
	}
	subs := make([]chan ClassifiedInterruption, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	classified := ClassifiedInterruption{
		Event:     evt,
		Transient: m.policy.IsTransient(evt),
	}

	m.log.Info("interruption event",
		"phase", evt.Phase,
		"type", evt.Type,
		"transient", classified.Transient)

	for _, ch := range subs {
		select {
		case ch <- classified:
		default:
			m.log.Warn("interruption subscriber full, dropping event")
		}
	}
}

func (m *InterruptionMonitor) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
