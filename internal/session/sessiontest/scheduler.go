// Package sessiontest provides a hand-driven Scheduler for tests of the card
// session and of the shells built on it.
package sessiontest

import (
	"sync"
	"time"

	"codeberg.org/snonux/flashy/internal/session"
)

var _ session.Scheduler = (*ManualScheduler)(nil)

// ManualScheduler only runs calls when told to, so tests can drive the
// reveal timer deterministically.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	owner   *ManualScheduler
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc records f without running it
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) session.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTimer{owner: m, delay: d, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns the number of armed timers
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled call
func (m *ManualScheduler) LastDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.timers) == 0 {
		return 0
	}
	return m.timers[len(m.timers)-1].delay
}

// Fire runs every armed timer and returns how many ran
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	var due []func()
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t.f)
		}
	}
	m.mu.Unlock()

	for _, f := range due {
		f()
	}
	return len(due)
}

// ReplayStopped runs the calls that were cancelled with Stop. It mimics
// timers whose callback was already on its way when Stop was called.
func (m *ManualScheduler) ReplayStopped() int {
	m.mu.Lock()
	var stale []func()
	for _, t := range m.timers {
		if t.stopped && !t.fired {
			t.fired = true
			stale = append(stale, t.f)
		}
	}
	m.mu.Unlock()

	for _, f := range stale {
		f()
	}
	return len(stale)
}
