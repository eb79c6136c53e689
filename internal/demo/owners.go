package demo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
)

// ErrOwnersClosed is returned by Acquire after Close.
var ErrOwnersClosed = errors.New("demo: owner store closed")

// Owners holds one search Debouncer per browser owner. Each debouncer is
// used only by its owner's requests and is torn down on Release, on idle
// expiry, or on Close.
type Owners struct {
	mu      sync.Mutex
	entries map[string]*ownerEntry
	closed  bool

	clock  clockwork.Clock
	delay  time.Duration
	ttl    time.Duration
	logger *slog.Logger
	rec    metrics.Recorder
}

type ownerEntry struct {
	deb      *hxhooks.Debouncer[string]
	lastSeen time.Time
}

// NewOwners creates an owner store. A nil clock means the real clock.
func NewOwners(delay, ttl time.Duration, clock clockwork.Clock, logger *slog.Logger, rec metrics.Recorder) *Owners {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Owners{
		entries: make(map[string]*ownerEntry),
		clock:   clock,
		delay:   delay,
		ttl:     ttl,
		logger:  logger,
		rec:     rec,
	}
}

// Acquire returns the owner's debouncer, creating it on first use.
func (o *Owners) Acquire(owner string) (*hxhooks.Debouncer[string], error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrOwnersClosed
	}
	if e, ok := o.entries[owner]; ok {
		e.lastSeen = o.clock.Now()
		return e.deb, nil
	}

	deb := hxhooks.NewDebouncer("", o.delay, func(q string) {
		o.rec.IncDebounce(metrics.DebounceEmitted)
		o.logger.Debug("search query settled", logfields.Owner(owner), logfields.Query(q))
	}, hxhooks.WithClock(o.clock))
	o.entries[owner] = &ownerEntry{deb: deb, lastSeen: o.clock.Now()}
	o.rec.SetActiveOwners(len(o.entries))
	return deb, nil
}

// Lookup returns the owner's debouncer without creating one.
func (o *Owners) Lookup(owner string) (*hxhooks.Debouncer[string], bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	e, ok := o.entries[owner]
	if !ok {
		return nil, false
	}
	e.lastSeen = o.clock.Now()
	return e.deb, true
}

// Release tears down the owner's debouncer. It reports whether one existed.
func (o *Owners) Release(owner string) bool {
	o.mu.Lock()
	e, ok := o.entries[owner]
	if ok {
		delete(o.entries, owner)
		o.rec.SetActiveOwners(len(o.entries))
	}
	o.mu.Unlock()

	if ok {
		o.teardown(owner, e.deb)
	}
	return ok
}

// Len returns the number of live owners.
func (o *Owners) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

// Sweep releases owners idle for longer than the TTL and returns how many
// were released.
func (o *Owners) Sweep() int {
	now := o.clock.Now()

	o.mu.Lock()
	stale := make(map[string]*hxhooks.Debouncer[string])
	for owner, e := range o.entries {
		if now.Sub(e.lastSeen) > o.ttl {
			stale[owner] = e.deb
			delete(o.entries, owner)
		}
	}
	if len(stale) > 0 {
		o.rec.SetActiveOwners(len(o.entries))
	}
	o.mu.Unlock()

	for owner, deb := range stale {
		o.teardown(owner, deb)
	}
	return len(stale)
}

// minSweepInterval floors the sweep period; tickers panic on a
// non-positive interval.
const minSweepInterval = time.Second

// Run sweeps every interval until ctx is done. Intervals below
// minSweepInterval are raised to it.
func (o *Owners) Run(ctx context.Context, interval time.Duration) {
	interval = max(interval, minSweepInterval)
	ticker := o.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := o.Sweep(); n > 0 {
				o.logger.Info("released idle owners", slog.Int("count", n))
			}
		}
	}
}

// Close tears down every debouncer. Acquire fails afterwards.
func (o *Owners) Close() {
	o.mu.Lock()
	entries := o.entries
	o.entries = make(map[string]*ownerEntry)
	o.closed = true
	o.rec.SetActiveOwners(0)
	o.mu.Unlock()

	for owner, e := range entries {
		o.teardown(owner, e.deb)
	}
}

func (o *Owners) teardown(owner string, deb *hxhooks.Debouncer[string]) {
	deb.Teardown()
	o.rec.IncDebounce(metrics.DebounceTornDown)
	o.logger.Debug("owner released", logfields.Owner(owner))
}
