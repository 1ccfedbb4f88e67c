package session

import (
	"sort"
	"time"
)

type manualCall struct {
	due time.Duration
	gen uint64
	seq int
	fn  func()
}

// ManualScheduler is a deterministic Scheduler for tests: time only moves
// when Advance is called, and due actions run ordered by their computed
// delay (insertion order breaks ties), matching the ordering guarantee of
// the animation pipeline.
type ManualScheduler struct {
	now     time.Duration
	gen     uint64
	seq     int
	pending []manualCall
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) {
	s.seq++
	s.pending = append(s.pending, manualCall{
		due: s.now + d,
		gen: s.gen,
		seq: s.seq,
		fn:  fn,
	})
}

func (s *ManualScheduler) Invalidate() { s.gen++ }

func (s *ManualScheduler) Stop() { s.pending = nil }

// Advance moves the clock forward and runs every action due in the window,
// in due-time order. Actions scheduled by running actions participate if
// they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d

	for {
		idx := -1
		for i, c := range s.pending {
			if c.due > target {
				continue
			}
			if idx == -1 || c.due < s.pending[idx].due ||
				(c.due == s.pending[idx].due && c.seq < s.pending[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}

		call := s.pending[idx]
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		s.now = call.due

		if call.gen == s.gen {
			call.fn()
		}
	}

	s.now = target
}

// PendingCount reports actions not yet run, including invalidated ones.
func (s *ManualScheduler) PendingCount() int { return len(s.pending) }

// PendingDelays lists pending due times relative to the current clock.
func (s *ManualScheduler) PendingDelays() []time.Duration {
	out := make([]time.Duration, 0, len(s.pending))
	for _, c := range s.pending {
		out = append(out, c.due-s.now)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
