package demo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/internal/ui"
	"github.com/pthm/hxhooks/lib/component"
)

// Field names a signup form field.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// signupFields is the render order.
var signupFields = []struct {
	field Field
	label string
	kind  string
}{
	{FieldName, "Name", "text"},
	{FieldEmail, "Email", "email"},
	{FieldPassword, "Password", "password"},
}

// SignupValidators are the checks run on submit.
var SignupValidators = hxhooks.Validators[Field]{
	FieldName: hxhooks.Required("name is required"),
	FieldEmail: hxhooks.All(
		hxhooks.Required("email is required"),
		hxhooks.Email("enter a valid email address"),
	),
	FieldPassword: hxhooks.All(
		hxhooks.Required("password is required"),
		hxhooks.MinLength(8, "password must be at least 8 characters"),
	),
}

// SignupProps carries the form snapshot between requests. It may hold a
// password, so the component encrypts its props.
type SignupProps struct {
	Form hxhooks.FormState[Field] `msgpack:"f"`
}

// SignupForm is a three-field signup form backed by a Form.
type SignupForm struct {
	*component.Component[SignupProps]
	logger *slog.Logger
	rec    metrics.Recorder
}

// NewSignupForm creates the signup form component.
func NewSignupForm(logger *slog.Logger, rec metrics.Recorder) *SignupForm {
	c := &SignupForm{
		Component: component.New[SignupProps]("signup").Sensitive(),
		logger:    logger,
		rec:       rec,
	}
	c.Bind(c)
	c.Action("change", c.handleChange)
	c.Action("reset", c.handleReset)
	c.Action("submit", c.handleSubmit)
	return c
}

// InitialSignup returns props for an empty form.
func InitialSignup() SignupProps {
	return SignupProps{Form: hxhooks.NewForm[Field](emptySignup(), nil).State()}
}

func emptySignup() map[Field]string {
	return map[Field]string{FieldName: "", FieldEmail: "", FieldPassword: ""}
}

// Hydrate fills in an empty form when props carry none.
func (c *SignupForm) Hydrate(_ context.Context, p *SignupProps) error {
	if p.Form.Initial == nil {
		*p = InitialSignup()
	}
	return nil
}

// Render produces the form.
func (c *SignupForm) Render(_ context.Context, p SignupProps) templ.Component {
	form := hxhooks.LoadForm(p.Form, nil)

	fields := make([]templ.Component, 0, len(signupFields)+1)
	for _, f := range signupFields {
		change := c.Call("change", p).Trigger("change").TargetClosest(".card").Attrs()
		fields = append(fields, ui.Field(f.label, string(f.field), f.kind, form.Value(f.field), form.Error(f.field), change))
	}
	fields = append(fields, ui.Group(
		ui.Button("Create account", ui.Primary, templ.Attributes{"type": "submit"}),
		ui.Button("Reset", ui.Ghost, c.Call("reset", p).TargetClosest(".card").Attrs()),
		ui.Spinner("signup-busy"),
	))

	status := ""
	if form.Dirty() {
		status = "Unsaved changes"
	}
	submit := c.Call("submit", p).TargetClosest(".card").Indicator("#signup-busy").Attrs()
	return ui.Card("signup-card", "Create an account",
		ui.Element("form", submit, fields...),
		ui.Notice("muted", status),
	)
}

func (c *SignupForm) form(ctx context.Context, p SignupProps, op string) *hxhooks.Form[Field] {
	return hxhooks.LoadForm(p.Form, func(hxhooks.FormState[Field]) {
		c.rec.IncTransition("form", op)
		c.logger.DebugContext(ctx, "form changed", logfields.Component(c.Name()), logfields.Action(op))
	})
}

// handleChange applies the value of the field that fired the change event.
func (c *SignupForm) handleChange(ctx context.Context, p SignupProps, r *http.Request) component.Result[SignupProps] {
	field, ok := lookupField(component.TriggerName(r))
	if !ok {
		return component.Err(p, fmt.Errorf("%w: field %q", component.ErrNotFound, component.TriggerName(r)))
	}
	form := c.form(ctx, p, "change")
	form.HandleChange(field, r.FormValue(string(field)))
	p.Form = form.State()
	return component.OK(p)
}

// handleReset restores the initial values and clears errors.
func (c *SignupForm) handleReset(ctx context.Context, p SignupProps, _ *http.Request) component.Result[SignupProps] {
	form := c.form(ctx, p, "reset")
	form.Reset()
	p.Form = form.State()
	return component.OK(p)
}

// handleSubmit applies every posted field, validates, and on success
// starts over with an empty form.
func (c *SignupForm) handleSubmit(ctx context.Context, p SignupProps, r *http.Request) component.Result[SignupProps] {
	if err := r.ParseForm(); err != nil {
		return component.Err(p, err)
	}
	form := c.form(ctx, p, "submit")
	for _, f := range signupFields {
		if v, posted := r.PostForm[string(f.field)]; posted && len(v) > 0 && v[0] != form.Value(f.field) {
			form.HandleChange(f.field, v[0])
		}
	}

	ok, errs := form.Validate(SignupValidators)
	c.rec.IncValidation("signup", ok)
	p.Form = form.State()
	if !ok {
		c.logger.InfoContext(ctx, "signup rejected", logfields.Component(c.Name()), slog.Int("errors", len(errs)))
		return component.Invalid(p).Flash(component.FlashError, "Please fix the highlighted fields")
	}

	name := strings.TrimSpace(form.Value(FieldName))
	if err := hxhooks.RequireField(string(FieldName), name); err != nil {
		return component.Err(p, err)
	}

	form.Reset()
	p.Form = form.State()
	return component.OK(p).
		Flash(component.FlashSuccess, "Welcome aboard, "+name+"!").
		Trigger("signup:completed")
}

func lookupField(name string) (Field, bool) {
	for _, f := range signupFields {
		if string(f.field) == name {
			return f.field, true
		}
	}
	return "", false
}
