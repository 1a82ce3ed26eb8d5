package monitor

import (
	"testing"
	"time"
)

func TestTransientPolicy_IsTransient(t *testing.T) {
	policy := DefaultTransientPolicy()

	tests := []struct {
		name string
		evt  InterruptionEvent
		want bool
	}{
		{
			name: "duck others type",
			evt:  InterruptionEvent{Type: InterruptionTypeDuckOthers},
			want: true,
		},
		{
			name: "begin other audio type",
			evt:  InterruptionEvent{Type: InterruptionTypeBeginOtherAudio},
			want: true,
		},
		{
			name: "assistant hint",
			evt:  InterruptionEvent{Type: InterruptionTypeUnknown, Hint: "Assistant overlay active"},
			want: true,
		},
		{
			name: "short duration",
			evt:  InterruptionEvent{Type: InterruptionTypeUnknown, Duration: 3 * time.Second},
			want: true,
		},
		{
			name: "long duration",
			evt:  InterruptionEvent{Type: InterruptionTypeUnknown, Duration: 15 * time.Second},
			want: false,
		},
		{
			name: "no signal defaults to full",
			evt:  InterruptionEvent{Type: InterruptionTypeUnknown},
			want: false,
		},
		{
			name: "phone call",
			evt:  InterruptionEvent{Type: InterruptionTypeFull, Hint: "incoming call", Duration: 45 * time.Second},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.IsTransient(tt.evt); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransientPolicy_TypeBeatsDuration(t *testing.T) {
	policy := DefaultTransientPolicy()
	// Explicit transient type decides even when the duration would say full.
	evt := InterruptionEvent{Type: InterruptionTypeDuckOthers, Duration: time.Minute}
	if !policy.IsTransient(evt) {
		t.Error("explicit transient type should win over duration")
	}
}

func TestInterruptionMonitor_ClassifiesOnBegin(t *testing.T) {
	m := NewInterruptionMonitor(TransientPolicy{}, nil)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Report(InterruptionEvent{Phase: InterruptionBegan, Type: InterruptionTypeDuckOthers})

	select {
	case got := <-ch:
		if !got.Transient {
			t.Error("duck-others begin should classify transient")
		}
		if got.Event.Phase != InterruptionBegan {
			t.Errorf("expected phase %s, got %s", InterruptionBegan, got.Event.Phase)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for interruption event")
	}

	if !m.Active() {
		t.Error("monitor should report active interruption after begin")
	}
}

func TestInterruptionMonitor_EndComputesDuration(t *testing.T) {
	m := NewInterruptionMonitor(TransientPolicy{}, nil)
	ch, cancel := m.Subscribe()
	defer cancel()

	began := time.Now()
	m.Report(InterruptionEvent{Phase: InterruptionBegan, Timestamp: began})
	<-ch
	m.Report(InterruptionEvent{Phase: InterruptionEnded, Timestamp: began.Add(2 * time.Second)})

	got := <-ch
	if got.Event.Duration != 2*time.Second {
		t.Errorf("expected computed duration 2s, got %v", got.Event.Duration)
	}
	if m.Active() {
		t.Error("monitor should not report active interruption after end")
	}
}

func TestNewInterruptionMonitor_EmptyPolicyGetsDefaults(t *testing.T) {
	m := NewInterruptionMonitor(TransientPolicy{}, nil)
	if m.policy.MaxDuration != 10*time.Second {
		t.Errorf("expected default MaxDuration 10s, got %v", m.policy.MaxDuration)
	}
	if len(m.policy.TransientTypes) == 0 {
		t.Error("expected default transient types")
	}
}
