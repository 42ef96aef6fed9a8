// Package debounce delays per-key actions until a quiet period has
// passed, resetting the wait whenever the same key fires again. The
// console uses it to hold live-search fetches until the operator stops
// typing.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultWindow is the quiet period used when a manager is created with
// no explicit window.
const DefaultWindow = 400 * time.Millisecond

// Manager schedules one pending action per key. A new schedule for the
// same key stops and replaces the pending one.
type Manager struct {
	window time.Duration
	timers map[string]*keyTimer
	mutex  sync.RWMutex
}

type keyTimer struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewManager creates a Manager with the given quiet window. A window of
// zero or less falls back to DefaultWindow.
func NewManager(window time.Duration) *Manager {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Manager{
		window: window,
		timers: make(map[string]*keyTimer),
	}
}

// Schedule runs action after the quiet window elapses with no further
// Schedule calls for key. A newer call for the same key replaces the
// pending action.
func (m *Manager) Schedule(key string, action func()) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if existing, exists := m.timers[key]; exists {
		log.Debug().
			Str("key", key).
			Msg("Resetting debounce timer")

		existing.timer.Stop()
		existing.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())

	timer := time.AfterFunc(m.window, func() {
		select {
		case <-ctx.Done():
			return
		default:
			m.cleanupTimer(key)
			action()
		}
	})

	m.timers[key] = &keyTimer{
		timer:  timer,
		cancel: cancel,
	}
}

func (m *Manager) cleanupTimer(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.timers, key)
}

// Cancel drops any pending action for key.
func (m *Manager) Cancel(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if pending, exists := m.timers[key]; exists {
		pending.timer.Stop()
		pending.cancel()
		delete(m.timers, key)
	}
}

// ActiveCount returns the number of pending actions.
func (m *Manager) ActiveCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.timers)
}
