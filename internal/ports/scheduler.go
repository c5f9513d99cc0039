package ports

import "time"

// Handle is a cancellable scheduled callback.
type Handle interface {
	// Cancel reports whether the callback was stopped before it ran.
	Cancel() bool
}

type Scheduler interface {
	ScheduleAt(at time.Time, fn func()) Handle
}
