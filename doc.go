// Package hxhooks provides small, owner-scoped state containers for
// server-rendered UI components: a boolean toggle, a keyed form with
// per-field validation, a debounced value, a user session and a keyed list
// renderer.
//
// The containers hold no references to each other and never perform I/O.
// A presentation layer (see lib/component) creates them, binds user
// interactions to their operations and renders their snapshots.
//
// # Transitions
//
// Every container applies pure transitions to an explicit snapshot value:
//
//	on := hxhooks.Flip(false)                 // true
//	next := form.State()                      // copy, safe to keep
//
// Snapshots are plain values. Maps are copied whenever a snapshot leaves a
// container, so an owner can keep a snapshot across calls without it
// changing underneath.
//
// # Ownership
//
// A container belongs to exactly one owner. Toggle, Form and Session are not
// safe for concurrent use; the owner sequences every call. Debouncer is the
// only container with its own asynchrony and is safe to call from several
// goroutines:
//
//	d := hxhooks.NewDebouncer("", 300*time.Millisecond, func(q string) {
//	    search(q)
//	})
//	defer d.Teardown()
//	d.Update("g")
//	d.Update("go") // only "go" is emitted, 300ms after this call
//
// # Validation
//
// Form.Validate reports failures as data and never returns an error.
// RequireField is the standalone check that returns a *ValidationError for
// callers that want failure as an error value; the presentation layer is
// expected to render it rather than let it escape.
package hxhooks
