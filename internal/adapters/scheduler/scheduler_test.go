package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualRunsDueCallbacksInOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewManual(start)

	var fired []string
	s.ScheduleAt(start.Add(2*time.Minute), func() { fired = append(fired, "second") })
	s.ScheduleAt(start.Add(time.Minute), func() { fired = append(fired, "first") })
	s.ScheduleAt(start.Add(time.Hour), func() { fired = append(fired, "later") })

	s.Advance(5 * time.Minute)

	assert.Equal(t, []string{"first", "second"}, fired)
	assert.Equal(t, start.Add(5*time.Minute), s.Now())
	assert.Equal(t, []time.Time{start.Add(time.Hour)}, s.Pending())
}

func TestManualCancelledCallbackNeverRuns(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewManual(start)

	ran := false
	h := s.ScheduleAt(start.Add(time.Minute), func() { ran = true })

	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())

	s.Advance(time.Hour)
	assert.False(t, ran)
}

func TestManualCallbackCanReschedule(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewManual(start)

	var seen []time.Time
	s.ScheduleAt(start.Add(time.Minute), func() {
		seen = append(seen, s.Now())
		s.ScheduleAt(s.Now().Add(time.Minute), func() { seen = append(seen, s.Now()) })
	})

	s.Advance(10 * time.Minute)

	assert.Equal(t, []time.Time{start.Add(time.Minute), start.Add(2 * time.Minute)}, seen)
}

func TestTimerFiresPastDeadlineImmediately(t *testing.T) {
	s := NewTimer(nil)
	done := make(chan struct{})

	s.ScheduleAt(time.Now().Add(-time.Minute), func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "callback did not fire")
	}
}

func TestTimerCancelPreventsCallback(t *testing.T) {
	s := NewTimer(nil)
	fired := make(chan struct{}, 1)

	h := s.ScheduleAt(time.Now().Add(50*time.Millisecond), func() { fired <- struct{}{} })
	assert.True(t, h.Cancel())

	select {
	case <-fired:
		require.FailNow(t, "cancelled callback fired")
	case <-time.After(150 * time.Millisecond):
	}
}
