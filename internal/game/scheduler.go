package game

import (
	"context"
	"time"
)

// Scheduler fires ticks at a fixed rate. Hosts with a frame loop feed it
// frame deltas through Advance; hosts without one call Run.
type Scheduler struct {
	interval   time.Duration
	maxCatchUp int
	acc        time.Duration
}

// NewScheduler creates a scheduler firing rate ticks per second. At most
// maxCatchUp ticks are released by a single Advance; a stalled host drops
// the backlog instead of replaying it in a burst.
func NewScheduler(rate, maxCatchUp int) *Scheduler {
	if rate <= 0 {
		rate = 1
	}
	if maxCatchUp <= 0 {
		maxCatchUp = 1
	}
	return &Scheduler{
		interval:   time.Second / time.Duration(rate),
		maxCatchUp: maxCatchUp,
	}
}

// Interval returns the time between ticks.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Advance adds dt to the accumulator and returns how many ticks are due.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	s.acc += dt
	due := int(s.acc / s.interval)
	s.acc -= time.Duration(due) * s.interval
	if due > s.maxCatchUp {
		due = s.maxCatchUp
		s.acc = 0
	}
	return due
}

// Reset re-arms the scheduler so the next tick is a full interval away.
func (s *Scheduler) Reset() {
	s.acc = 0
}

// Drive ticks session for every due tick in dt and stops early if the game
// is lost. It returns the number of ticks run.
func (s *Scheduler) Drive(session *Session, dt time.Duration) int {
	due := s.Advance(dt)
	for i := range due {
		if session.State() != Running {
			s.Reset()
			return i
		}
		session.Tick()
	}
	return due
}

// Run ticks session on a wall-clock ticker until ctx is cancelled or the game
// is lost. A lost game returns nil; the host restarts the session and calls
// Run again to re-arm.
func (s *Scheduler) Run(ctx context.Context, session *Session) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			session.Tick()
			if session.State() != Running {
				return nil
			}
		}
	}
}
