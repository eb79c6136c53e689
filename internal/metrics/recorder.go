package metrics

import "time"

// DebounceEvent enumerates debouncer lifecycle events.
type DebounceEvent string

const (
	DebounceScheduled DebounceEvent = "scheduled"
	DebounceEmitted   DebounceEvent = "emitted"
	DebounceFlushed   DebounceEvent = "flushed"
	DebounceTornDown  DebounceEvent = "torn_down"
)

// Recorder defines the observability hooks used by the demo components.
type Recorder interface {
	ObserveRequest(component, action string, status int, elapsed time.Duration)
	IncTransition(container, op string)
	IncValidation(form string, valid bool)
	IncDebounce(event DebounceEvent)
	SetActiveOwners(n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, string, int, time.Duration) {}
func (NoopRecorder) IncTransition(string, string) {}
func (NoopRecorder) IncValidation(string, bool) {}
func (NoopRecorder) IncDebounce(DebounceEvent) {}
func (NoopRecorder) SetActiveOwners(int) {}
