package testutil

import (
	"sync"
	"time"

	"github.com/vytor/deutschhub/internal/session"
)

// FakeScheduler records delayed calls and runs them only when told to.
type FakeScheduler struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

// FakeTimer is a call registered with a FakeScheduler.
type FakeTimer struct {
	Delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *FakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) session.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &FakeTimer{Delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Pending counts timers that were neither stopped nor fired.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Last returns the most recently scheduled timer, or nil.
func (s *FakeScheduler) Last() *FakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// FireAll runs every pending timer in scheduling order.
func (s *FakeScheduler) FireAll() int {
	s.mu.Lock()
	var due []*FakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// Fire runs t even if it was stopped, the way a timer that already fired
// races with Stop.
func (t *FakeTimer) Fire() {
	t.fired = true
	t.f()
}
