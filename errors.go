package hxhooks

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for container operations.
var (
	ErrRequired    = errors.New("hxhooks: value is required")
	ErrInvalidRole = errors.New("hxhooks: invalid role")
)

// ValidationError reports a single field that failed a required check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hxhooks: %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrRequired) match.
func (e *ValidationError) Unwrap() error {
	return ErrRequired
}

// RequireField returns a *ValidationError when value is empty or contains
// only whitespace.
//
// Unlike Form.Validate, which reports failures as data, RequireField is for
// callers that want an error value (typically an action handler that hands
// it to the error display).
func RequireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// IsValidation checks if err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation extracts the *ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
