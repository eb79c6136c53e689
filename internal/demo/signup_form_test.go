package demo

import (
	"net/http"
	"testing"

	"github.com/pthm/hxhooks/lib/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupChangeUsesTriggeringField(t *testing.T) {
	hs := newHarness(t)
	form := hs.demo.Signup

	enc, err := form.Encode(InitialSignup())
	require.NoError(t, err)

	res := component.NewTestRequest(http.MethodPost, form.Prefix()+"/change").
		WithFormData("p", enc).
		WithFormData("email", "ada@example.com").
		WithHeader("HX-Trigger-Name", "email").
		Execute(hs.h)
	require.True(t, res.IsOK(), res.HTML)
	assert.Contains(t, res.HTML, `value="ada@example.com"`)
	assert.Contains(t, res.HTML, "Unsaved changes")

	res = component.NewTestRequest(http.MethodPost, form.Prefix()+"/change").
		WithFormData("p", enc).
		WithHeader("HX-Trigger-Name", "nickname").
		Execute(hs.h)
	assert.True(t, res.HasStatus(http.StatusNotFound))
}

func TestSignupSubmit(t *testing.T) {
	hs := newHarness(t)
	form := hs.demo.Signup

	res := component.TestCall(hs.h, form.Call("submit", InitialSignup()), map[string]string{
		"name":     "Ada",
		"email":    "not-an-email",
		"password": "short",
	})
	require.True(t, res.HasStatus(http.StatusUnprocessableEntity), res.HTML)
	assert.True(t, res.HasFlash(component.FlashError, "Please fix the highlighted fields"))
	assert.Contains(t, res.HTML, "enter a valid email address")
	assert.Contains(t, res.HTML, "password must be at least 8 characters")
	assert.NotContains(t, res.HTML, "name is required")

	res = component.TestCall(hs.h, form.Call("submit", InitialSignup()), map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct horse",
	})
	require.True(t, res.IsOK(), res.HTML)
	assert.True(t, res.HasFlash(component.FlashSuccess, "Welcome aboard, Ada!"))
	assert.True(t, res.HasEvent("signup:completed"))
	assert.NotContains(t, res.HTML, `value="Ada"`)

	assert.Equal(t, 1, hs.rec.count(func(r *countingRecorder) int { return r.validations["signup/false"] }))
	assert.Equal(t, 1, hs.rec.count(func(r *countingRecorder) int { return r.validations["signup/true"] }))
}

func TestSignupReset(t *testing.T) {
	hs := newHarness(t)
	form := hs.demo.Signup

	p := InitialSignup()
	p.Form.Values[FieldName] = "Grace"
	p.Form.Errors = map[Field]string{FieldEmail: "email is required"}

	res := component.TestCall(hs.h, form.Call("reset", p), nil)
	require.True(t, res.IsOK(), res.HTML)
	assert.NotContains(t, res.HTML, "Grace")
	assert.NotContains(t, res.HTML, "email is required")
	assert.NotContains(t, res.HTML, "Unsaved changes")
}
