package connectivity

import (
	"testing"
	"time"
)

func TestMonitor_DefaultsAvailable(t *testing.T) {
	m := NewMonitor(nil)
	if !m.Available() {
		t.Error("monitor should start available")
	}
}

func TestMonitor_Set(t *testing.T) {
	m := NewMonitor(nil)
	m.Set(false)
	if m.Available() {
		t.Error("expected unavailable after Set(false)")
	}
	m.Set(true)
	if !m.Available() {
		t.Error("expected available after Set(true)")
	}
}

func TestMonitor_SubscribeNotifiesOnChange(t *testing.T) {
	m := NewMonitor(nil)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(false)

	select {
	case status := <-ch:
		if status.Available {
			t.Error("expected unavailable status")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for connectivity update")
	}
}

func TestMonitor_NoNotifyWithoutChange(t *testing.T) {
	m := NewMonitor(nil)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Set(true)

	select {
	case <-ch:
		t.Error("should not notify when availability did not change")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(nil)
	ch, cancel := m.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	m.Set(false)
}
