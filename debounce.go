package hxhooks

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DebounceOption configures a Debouncer.
type DebounceOption func(*debounceConfig)

type debounceConfig struct {
	scheduler Scheduler
}

// WithScheduler sets the scheduler used for pending emissions.
func WithScheduler(s Scheduler) DebounceOption {
	return func(c *debounceConfig) {
		c.scheduler = s
	}
}

// WithClock schedules emissions on clock. Tests pass a
// clockwork.FakeClock to control time.
func WithClock(clock clockwork.Clock) DebounceOption {
	return func(c *debounceConfig) {
		c.scheduler = NewClockScheduler(clock)
	}
}

// Debouncer delays propagation of a changing value until it has been left
// unchanged for the configured delay.
//
// Value reports the last emitted value. Update records a new source value
// and reschedules emission, cancelling any emission still pending, so at
// most one emission is pending at any time. Only the last value before a
// quiet period is ever emitted.
//
// A delay of zero or less emits at the scheduler's next opportunity.
//
// Emissions run on the scheduler's goroutine, one at a time. The emit
// callback may call Update but must not call Teardown. Flush called from
// the callback does nothing and reports false.
type Debouncer[T any] struct {
	mu      sync.Mutex
	emitMu  sync.Mutex
	delay   time.Duration
	sched   Scheduler
	emit    func(T)
	value   T
	pending T
	waiting bool
	handle  Handle
	gen     uint64
	closed  bool
}

// NewDebouncer creates a debouncer whose observed value starts at initial.
// emit may be nil.
func NewDebouncer[T any](initial T, delay time.Duration, emit func(T), opts ...DebounceOption) *Debouncer[T] {
	cfg := debounceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = NewClockScheduler(nil)
	}
	return &Debouncer[T]{
		delay: delay,
		sched: cfg.scheduler,
		emit:  emit,
		value: initial,
	}
}

// Update records v and schedules its emission after the delay, replacing
// any pending emission. Updates after Teardown are ignored.
func (d *Debouncer[T]) Update(v T) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.gen++
	gen := d.gen
	d.pending = v
	d.waiting = true
	d.mu.Unlock()

	// Schedule outside the lock: a scheduler may fire before returning.
	h := d.sched.Schedule(d.delay, func() { d.fire(gen) })

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || gen != d.gen || !d.waiting {
		h.Cancel()
		return
	}
	d.handle = h
}

// Flush emits the pending value immediately. It reports false when nothing
// was pending, or when an emission is already running (including a call
// from inside the emit callback); the pending value then stays scheduled.
func (d *Debouncer[T]) Flush() bool {
	if !d.emitMu.TryLock() {
		return false
	}
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.closed || !d.waiting {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	gen := d.gen
	d.mu.Unlock()
	return d.emitLocked(gen)
}

// Teardown cancels any pending emission. No emission starts after Teardown
// returns, and an emission already running has finished by then.
// Teardown is idempotent.
func (d *Debouncer[T]) Teardown() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.cancelLocked()
	d.waiting = false
	var zero T
	d.pending = zero
	d.mu.Unlock()

	// Wait out an emission that passed its checks before closed was set.
	d.emitMu.Lock()
	d.emitMu.Unlock()
}

// Value returns the last emitted value, or the initial value.
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Pending reports whether an emission is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waiting
}

// Delay returns the quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Closed reports whether Teardown has been called.
func (d *Debouncer[T]) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Debouncer[T]) fire(gen uint64) bool {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	return d.emitLocked(gen)
}

// emitLocked runs the emission for gen. emitMu must be held.
func (d *Debouncer[T]) emitLocked(gen uint64) bool {
	d.mu.Lock()
	if d.closed || gen != d.gen || !d.waiting {
		d.mu.Unlock()
		return false
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.waiting = false
	d.handle = nil
	d.value = v
	d.mu.Unlock()

	if d.emit != nil {
		d.emit(v)
	}
	return true
}

func (d *Debouncer[T]) cancelLocked() {
	if d.handle != nil {
		d.handle.Cancel()
		d.handle = nil
	}
}
