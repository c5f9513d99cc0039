package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/bnema/interview-prep-cli/internal/ports"
)

// Manual is a deterministic scheduler driven by an explicit clock.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualHandle
}

var (
	_ ports.Scheduler = (*Manual)(nil)
	_ ports.Clock     = (*Manual)(nil)
)

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

func (m *Manual) ScheduleAt(at time.Time, fn func()) ports.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	h := &manualHandle{owner: m, at: at, seq: m.seq, fn: fn}
	m.pending = append(m.pending, h)
	return h
}

// Pending lists the fire times of callbacks not yet run or cancelled.
func (m *Manual) Pending() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	times := make([]time.Time, 0, len(m.pending))
	for _, h := range m.pending {
		times = append(times, h.at)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// Advance moves the clock forward by d and runs every callback that became due,
// in fire-time order. Callbacks run without the scheduler lock held.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	m.AdvanceTo(target)
}

func (m *Manual) AdvanceTo(target time.Time) {
	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		if next.at.After(m.now) {
			m.now = next.at
		}
		m.removeLocked(next)
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) nextDueLocked(target time.Time) *manualHandle {
	var next *manualHandle
	for _, h := range m.pending {
		if h.at.After(target) {
			continue
		}
		if next == nil || h.at.Before(next.at) || (h.at.Equal(next.at) && h.seq < next.seq) {
			next = h
		}
	}

	return next
}

func (m *Manual) removeLocked(target *manualHandle) bool {
	for i, h := range m.pending {
		if h == target {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}

	return false
}

type manualHandle struct {
	owner *Manual
	at    time.Time
	seq   int
	fn    func()
}

func (h *manualHandle) Cancel() bool {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()

	return h.owner.removeLocked(h)
}
