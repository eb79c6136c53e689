package demo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOwners(t *testing.T) (*Owners, *clockwork.FakeClock, *countingRecorder) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	rec := newCountingRecorder()
	o := NewOwners(100*time.Millisecond, time.Minute, clock, slog.New(slog.NewTextHandler(io.Discard, nil)), rec)
	t.Cleanup(o.Close)
	return o, clock, rec
}

func TestOwnersAcquireIsPerOwner(t *testing.T) {
	o, _, rec := newTestOwners(t)

	a1, err := o.Acquire("a")
	require.NoError(t, err)
	a2, err := o.Acquire("a")
	require.NoError(t, err)
	b, err := o.Acquire("b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, o.Len())
	assert.Equal(t, 2, rec.count(func(r *countingRecorder) int { return r.owners }))

	_, ok := o.Lookup("c")
	assert.False(t, ok)
}

func TestOwnersRelease(t *testing.T) {
	o, clock, _ := newTestOwners(t)

	deb, err := o.Acquire("a")
	require.NoError(t, err)
	deb.Update("query")

	assert.True(t, o.Release("a"))
	assert.False(t, o.Release("a"))
	assert.True(t, deb.Closed())

	clock.Advance(time.Second)
	assert.Equal(t, "", deb.Value())
}

func TestOwnersSweepExpiresIdle(t *testing.T) {
	o, clock, _ := newTestOwners(t)

	idle, err := o.Acquire("idle")
	require.NoError(t, err)
	_, err = o.Acquire("busy")
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	_, ok := o.Lookup("busy")
	require.True(t, ok)
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, o.Sweep())
	assert.True(t, idle.Closed())
	_, ok = o.Lookup("busy")
	assert.True(t, ok)
	assert.Equal(t, 0, o.Sweep())
}

func TestOwnersRunSweepsOnTick(t *testing.T) {
	o, clock, _ := newTestOwners(t)

	_, err := o.Acquire("a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		o.Run(ctx, 30*time.Second)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(90 * time.Second)
	assert.Eventually(t, func() bool { return o.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestOwnersRunClampsInterval(t *testing.T) {
	o, clock, _ := newTestOwners(t)

	_, err := o.Acquire("a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		// An owner_ttl of 1ns halves to zero.
		o.Run(ctx, 0)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute + minSweepInterval)
	assert.Eventually(t, func() bool { return o.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestOwnersClose(t *testing.T) {
	o, _, _ := newTestOwners(t)

	deb, err := o.Acquire("a")
	require.NoError(t, err)

	o.Close()
	assert.True(t, deb.Closed())
	assert.Equal(t, 0, o.Len())

	_, err = o.Acquire("b")
	assert.ErrorIs(t, err, ErrOwnersClosed)
}
