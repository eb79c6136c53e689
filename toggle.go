package hxhooks

// Flip is the transition applied by Toggle.Toggle.
func Flip(v bool) bool { return !v }

func alwaysTrue(bool) bool  { return true }
func alwaysFalse(bool) bool { return false }

// Toggle is a boolean flag with explicit transitions.
//
// Every operation succeeds and notifies the owner, even when the value does
// not change (SetTrue on a true toggle still notifies).
type Toggle struct {
	value    bool
	onChange func(bool)
}

// NewToggle creates a toggle holding initial. onChange may be nil.
func NewToggle(initial bool, onChange func(bool)) *Toggle {
	return &Toggle{value: initial, onChange: onChange}
}

// Value returns the current value.
func (t *Toggle) Value() bool {
	return t.value
}

// Toggle flips the value and returns the new one.
func (t *Toggle) Toggle() bool {
	return t.apply(Flip)
}

// SetTrue sets the value to true.
func (t *Toggle) SetTrue() bool {
	return t.apply(alwaysTrue)
}

// SetFalse sets the value to false.
func (t *Toggle) SetFalse() bool {
	return t.apply(alwaysFalse)
}

func (t *Toggle) apply(next func(bool) bool) bool {
	t.value = next(t.value)
	if t.onChange != nil {
		t.onChange(t.value)
	}
	return t.value
}
