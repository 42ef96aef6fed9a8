package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedule_FiresAfterQuietWindow(t *testing.T) {
	m := NewManager(30 * time.Millisecond)

	var fired atomic.Int32
	m.Schedule("agents:search", func() { fired.Add(1) })

	if n := fired.Load(); n != 0 {
		t.Fatalf("Expected no fire before the window, got %d", n)
	}

	time.Sleep(80 * time.Millisecond)

	if n := fired.Load(); n != 1 {
		t.Errorf("Expected exactly one fire, got %d", n)
	}
	if m.ActiveCount() != 0 {
		t.Errorf("Expected no pending timers after firing, got %d", m.ActiveCount())
	}
}

func TestSchedule_NewCallResetsTimer(t *testing.T) {
	m := NewManager(50 * time.Millisecond)

	var got atomic.Value
	for _, query := range []string{"a", "ab", "abc"} {
		q := query
		m.Schedule("users:search", func() { got.Store(q) })
		time.Sleep(20 * time.Millisecond)
	}

	if v := got.Load(); v != nil {
		t.Fatalf("Expected no fire while typing continues, got %v", v)
	}

	time.Sleep(100 * time.Millisecond)

	if v := got.Load(); v != "abc" {
		t.Errorf("Expected only the final query to fire, got %v", v)
	}
}

func TestSchedule_KeysAreIndependent(t *testing.T) {
	m := NewManager(20 * time.Millisecond)

	var agents, users atomic.Int32
	m.Schedule("agents:search", func() { agents.Add(1) })
	m.Schedule("users:search", func() { users.Add(1) })

	time.Sleep(60 * time.Millisecond)

	if agents.Load() != 1 || users.Load() != 1 {
		t.Errorf("Expected both keys to fire once, got agents=%d users=%d", agents.Load(), users.Load())
	}
}

func TestCancel_DropsPendingAction(t *testing.T) {
	m := NewManager(30 * time.Millisecond)

	var fired atomic.Int32
	m.Schedule("coupons:search", func() { fired.Add(1) })
	m.Cancel("coupons:search")

	time.Sleep(80 * time.Millisecond)

	if n := fired.Load(); n != 0 {
		t.Errorf("Expected cancelled action not to fire, got %d", n)
	}
}
