package monitor

import (
	"testing"
	"time"
)

func TestRouteMonitor_Subscribe(t *testing.T) {
	m := NewRouteMonitor(nil)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Report(RouteEvent{Reason: RouteOldDeviceGone, InputName: "builtin_mic"})

	select {
	case evt := <-ch:
		if evt.Reason != RouteOldDeviceGone {
			t.Errorf("expected reason %s, got %s", RouteOldDeviceGone, evt.Reason)
		}
		if evt.InputName != "builtin_mic" {
			t.Errorf("expected input 'builtin_mic', got %s", evt.InputName)
		}
		if evt.Timestamp.IsZero() {
			t.Error("timestamp should be set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for route event")
	}
}

func TestRouteMonitor_Unsubscribe(t *testing.T) {
	m := NewRouteMonitor(nil)
	ch, cancel := m.Subscribe()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	// Reporting after cancel must not panic.
	m.Report(RouteEvent{Reason: RouteNewDeviceAvailable})
}

func TestRouteMonitor_ActiveRoute(t *testing.T) {
	m := NewRouteMonitor(nil)
	m.Report(RouteEvent{Reason: RouteCategoryChange, InputName: "headset", OutputName: "headset"})

	in, out := m.ActiveRoute()
	if in != "headset" || out != "headset" {
		t.Errorf("unexpected route %q/%q", in, out)
	}
}

func TestRouteMonitor_DefaultsUnknownReason(t *testing.T) {
	m := NewRouteMonitor(nil)
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Report(RouteEvent{})

	evt := <-ch
	if evt.Reason != RouteUnknown {
		t.Errorf("expected %s, got %s", RouteUnknown, evt.Reason)
	}
}

func TestRouteMonitor_SlowSubscriberDoesNotBlock(t *testing.T) {
	m := NewRouteMonitor(nil)
	_, cancel := m.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			m.Report(RouteEvent{Reason: RouteOverride})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Report blocked on a slow subscriber")
	}
}
