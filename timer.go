package hxhooks

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Handle refers to a scheduled callback.
type Handle interface {
	// Cancel stops the callback. It reports false when the callback already
	// ran or was already cancelled.
	Cancel() bool
}

// Scheduler runs callbacks after a delay. Callbacks run asynchronously to
// the caller of Schedule, on a goroutine owned by the scheduler.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// NewClockScheduler returns a Scheduler backed by clock. A nil clock uses
// the real clock.
func NewClockScheduler(clock clockwork.Clock) Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return clockScheduler{clock: clock}
}

type clockScheduler struct {
	clock clockwork.Clock
}

func (s clockScheduler) Schedule(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return timerHandle{timer: s.clock.AfterFunc(d, fn)}
}

type timerHandle struct {
	timer clockwork.Timer
}

func (h timerHandle) Cancel() bool {
	return h.timer.Stop()
}
