package hxhooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleParity(t *testing.T) {
	for _, initial := range []bool{false, true} {
		for n := 0; n < 7; n++ {
			tg := NewToggle(initial, nil)
			for i := 0; i < n; i++ {
				tg.Toggle()
			}
			assert.Equal(t, initial != (n%2 == 1), tg.Value(), "initial=%v n=%d", initial, n)
		}
	}
}

func TestToggleSetters(t *testing.T) {
	tg := NewToggle(false, nil)

	assert.True(t, tg.SetTrue())
	assert.True(t, tg.SetTrue())
	assert.False(t, tg.SetFalse())
	assert.False(t, tg.Value())
	assert.True(t, tg.Toggle())
}

func TestToggleNotifiesEveryOperation(t *testing.T) {
	var seen []bool
	tg := NewToggle(true, func(v bool) { seen = append(seen, v) })

	tg.SetTrue()
	tg.Toggle()
	tg.SetFalse()
	tg.Toggle()

	assert.Equal(t, []bool{true, false, false, true}, seen)
}

func TestFlip(t *testing.T) {
	assert.True(t, Flip(false))
	assert.False(t, Flip(true))
}
