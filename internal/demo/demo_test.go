package demo

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/lib/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 300 * time.Millisecond

type countingRecorder struct {
	metrics.NoopRecorder

	mu          sync.Mutex
	transitions map[string]int
	validations map[string]int
	debounce    map[metrics.DebounceEvent]int
	owners      int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		transitions: make(map[string]int),
		validations: make(map[string]int),
		debounce:    make(map[metrics.DebounceEvent]int),
	}
}

func (r *countingRecorder) IncTransition(container, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions[container+"/"+op]++
}

func (r *countingRecorder) IncValidation(form string, valid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validations[fmt.Sprintf("%s/%t", form, valid)]++
}

func (r *countingRecorder) IncDebounce(ev metrics.DebounceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debounce[ev]++
}

func (r *countingRecorder) SetActiveOwners(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners = n
}

func (r *countingRecorder) count(f func(*countingRecorder) int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return f(r)
}

type harness struct {
	demo  *Demo
	h     http.Handler
	clock *clockwork.FakeClock
	rec   *countingRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := clockwork.NewFakeClock()
	rec := newCountingRecorder()

	d := New(Options{
		Debounce:     testDebounce,
		MaxDistance:  2,
		PollInterval: time.Second,
		OwnerTTL:     time.Minute,
		Clock:        clock,
		Logger:       logger,
		Recorder:     rec,
	})
	t.Cleanup(d.Close)

	reg, err := component.NewRegistry([]byte("demo-test-key-0123"), component.WithLogger(logger))
	require.NoError(t, err)
	d.Register(reg)
	return &harness{demo: d, h: reg.Handler(), clock: clock, rec: rec}
}

func TestPageRendersEveryCard(t *testing.T) {
	hs := newHarness(t)

	rec := httptest.NewRecorder()
	hs.demo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, id := range []string{"toggle-card", "signup-card", "search-card", "profile-card", `id="toasts"`} {
		assert.Contains(t, body, id)
	}
	assert.Contains(t, body, "Start typing to search")

	rec = httptest.NewRecorder()
	hs.demo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleCard(t *testing.T) {
	hs := newHarness(t)
	card := hs.demo.Toggle

	res := component.TestCall(hs.h, card.Call("toggle", ToggleProps{}), nil)
	require.True(t, res.IsOK(), res.HTML)
	assert.Contains(t, res.HTML, "Notifications are on")
	assert.Contains(t, res.HTML, `aria-pressed="true"`)

	res = component.TestCall(hs.h, card.Call("off", ToggleProps{On: true}), nil)
	assert.Contains(t, res.HTML, "Notifications are off")

	// Turning on a switch that is already on is still a transition.
	res = component.TestCall(hs.h, card.Call("on", ToggleProps{On: true}), nil)
	assert.Contains(t, res.HTML, "Notifications are on")

	assert.Equal(t, 1, hs.rec.count(func(r *countingRecorder) int { return r.transitions["toggle/toggle"] }))
	assert.Equal(t, 1, hs.rec.count(func(r *countingRecorder) int { return r.transitions["toggle/on"] }))
}
