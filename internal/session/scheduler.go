package session

import (
	"sync"
	"time"
)

// Scheduler defers actions used for staggered map animations and
// notification dismissal. Invalidate makes every pending action a no-op;
// callers that mutate shared state still re-check their own generation
// under the session lock, so a callback racing an Invalidate can never
// touch torn-down layers.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
	Invalidate()
	Stop()
}

// TimerScheduler runs actions on time.AfterFunc timers.
type TimerScheduler struct {
	mu      sync.Mutex
	gen     uint64
	stopped bool
	timers  map[*time.Timer]struct{}
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[*time.Timer]struct{})}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	gen := s.gen
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, t)
		live := !s.stopped && gen == s.gen
		s.mu.Unlock()

		if live {
			fn()
		}
	})
	s.timers[t] = struct{}{}
}

// Invalidate drops every pending action. Timers already past their
// generation check keep running their callback; layer-state guards in the
// callbacks themselves cover that window.
func (s *TimerScheduler) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	for t := range s.timers {
		t.Stop()
		delete(s.timers, t)
	}
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for t := range s.timers {
		t.Stop()
		delete(s.timers, t)
	}
}
