package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/bnema/interview-prep-cli/internal/ports"
)

// Timer schedules callbacks on the runtime timer wheel.
type Timer struct {
	clock ports.Clock
}

var _ ports.Scheduler = (*Timer)(nil)

func NewTimer(clock ports.Clock) *Timer {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Timer{clock: clock}
}

// ScheduleAt runs fn at the given instant, or immediately if it is already past.
func (s *Timer) ScheduleAt(at time.Time, fn func()) ports.Handle {
	h := &timerHandle{}
	delay := max(at.Sub(s.clock.Now()), 0)
	h.timer = time.AfterFunc(delay, func() {
		if h.cancelled.Load() {
			return
		}
		fn()
	})

	return h
}

type timerHandle struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (h *timerHandle) Cancel() bool {
	h.cancelled.Store(true)
	return h.timer.Stop()
}
