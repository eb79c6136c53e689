package hxhooks

import (
	"maps"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator checks a single field value and returns an error message, or ""
// when the value is acceptable. Validators must be pure.
type Validator func(value string) string

// Validators maps field identifiers to their validator.
type Validators[F ~string] map[F]Validator

// Check computes a fresh error map for values. Only fields with a
// validator are evaluated; a field missing from values is checked as "".
func (v Validators[F]) Check(values map[F]string) map[F]string {
	errs := make(map[F]string)
	for field, validate := range v {
		if validate == nil {
			continue
		}
		if msg := validate(values[field]); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// FormState is the snapshot of a Form.
//
// Initial is captured when the form is created and never changes. Every
// key of Errors is also a key of Values.
type FormState[F ~string] struct {
	Initial map[F]string `msgpack:"i"`
	Values  map[F]string `msgpack:"v"`
	Errors  map[F]string `msgpack:"e,omitempty"`
}

func newFormState[F ~string](initial map[F]string) FormState[F] {
	return FormState[F]{
		Initial: copyFields(initial),
		Values:  copyFields(initial),
		Errors:  make(map[F]string),
	}
}

// Valid reports whether the snapshot holds no errors.
func (s FormState[F]) Valid() bool {
	return len(s.Errors) == 0
}

// Dirty reports whether any value differs from its initial value.
func (s FormState[F]) Dirty() bool {
	return !maps.Equal(s.Values, s.Initial)
}

func (s FormState[F]) clone() FormState[F] {
	return FormState[F]{
		Initial: copyFields(s.Initial),
		Values:  copyFields(s.Values),
		Errors:  copyFields(s.Errors),
	}
}

func (s FormState[F]) withChange(field F, value string) FormState[F] {
	next := s.clone()
	next.Values[field] = value
	delete(next.Errors, field)
	return next
}

func (s FormState[F]) reset() FormState[F] {
	return FormState[F]{
		Initial: copyFields(s.Initial),
		Values:  copyFields(s.Initial),
		Errors:  make(map[F]string),
	}
}

func (s FormState[F]) withErrors(errs map[F]string) FormState[F] {
	next := s.clone()
	next.Errors = copyFields(errs)
	for field := range errs {
		if _, ok := next.Values[field]; !ok {
			next.Values[field] = ""
		}
	}
	return next
}

func copyFields[F ~string](m map[F]string) map[F]string {
	out := make(map[F]string, len(m))
	maps.Copy(out, m)
	return out
}

// Form holds keyed string fields with per-field validation errors.
type Form[F ~string] struct {
	state    FormState[F]
	onChange func(FormState[F])
}

// NewForm creates a form whose initial snapshot is a copy of initial.
// onChange may be nil.
func NewForm[F ~string](initial map[F]string, onChange func(FormState[F])) *Form[F] {
	return &Form[F]{state: newFormState(initial), onChange: onChange}
}

// LoadForm restores a form from a snapshot taken earlier with State.
func LoadForm[F ~string](state FormState[F], onChange func(FormState[F])) *Form[F] {
	s := state.clone()
	for field := range s.Errors {
		if _, ok := s.Values[field]; !ok {
			delete(s.Errors, field)
		}
	}
	return &Form[F]{state: s, onChange: onChange}
}

// HandleChange sets the value of field and clears its error.
func (f *Form[F]) HandleChange(field F, value string) {
	f.apply(f.state.withChange(field, value))
}

// Reset restores every value to the initial snapshot and clears all errors.
func (f *Form[F]) Reset() {
	f.apply(f.state.reset())
}

// Validate replaces the form's errors with a fresh map computed from
// validators and returns it. Fields without a validator are error-free in
// the result even if they held an error before. An empty validator map
// yields (true, {}).
//
// A validator keyed on a field absent from Values adds that field to Values
// as "" so its error has a home. Initial is untouched, so the form then
// reports Dirty.
func (f *Form[F]) Validate(validators Validators[F]) (bool, map[F]string) {
	errs := validators.Check(f.state.Values)
	f.apply(f.state.withErrors(errs))
	return len(errs) == 0, errs
}

// State returns a copy of the current snapshot.
func (f *Form[F]) State() FormState[F] {
	return f.state.clone()
}

// Values returns a copy of the current values.
func (f *Form[F]) Values() map[F]string {
	return copyFields(f.state.Values)
}

// Errors returns a copy of the current errors.
func (f *Form[F]) Errors() map[F]string {
	return copyFields(f.state.Errors)
}

// Value returns the value of field, or "" when unset.
func (f *Form[F]) Value(field F) string {
	return f.state.Values[field]
}

// Error returns the error of field, or "" when it has none.
func (f *Form[F]) Error(field F) string {
	return f.state.Errors[field]
}

// Dirty reports whether any value differs from its initial value.
func (f *Form[F]) Dirty() bool {
	return f.state.Dirty()
}

func (f *Form[F]) apply(next FormState[F]) {
	f.state = next
	if f.onChange != nil {
		f.onChange(next.clone())
	}
}

// Required fails values that are empty or contain only whitespace.
func Required(msg string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

// MinLength fails non-empty values shorter than n runes. Pair it with
// Required when empty values should fail too.
func MinLength(n int, msg string) Validator {
	return func(v string) string {
		if v != "" && utf8.RuneCountInString(v) < n {
			return msg
		}
		return ""
	}
}

// MaxLength fails values longer than n runes.
func MaxLength(n int, msg string) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return msg
		}
		return ""
	}
}

// Matches fails non-empty values that do not match re.
func Matches(re *regexp.Regexp, msg string) Validator {
	return func(v string) string {
		if v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email fails non-empty values that do not look like an email address.
func Email(msg string) Validator {
	return Matches(emailPattern, msg)
}

// All runs validators in order and returns the first failure.
func All(validators ...Validator) Validator {
	return func(v string) string {
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			if msg := validate(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}
