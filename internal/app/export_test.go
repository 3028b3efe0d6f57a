package app

import (
	"sort"
	"sync"
	"time"
)

// FakeScheduler fires scheduled callbacks only when Advance moves its clock.
// With Leaky set, stop functions report failure and do not prevent firing,
// which reproduces a timer that already started when it was cancelled.
type FakeScheduler struct {
	Leaky bool

	mu      sync.Mutex
	elapsed time.Duration
	timers  []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *FakeScheduler) Schedule(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{at: s.elapsed + d, f: f}
	s.timers = append(s.timers, t)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.Leaky || t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.fired && !t.stopped && t.at <= s.elapsed {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}
