package hxhooks

import (
	"errors"
	"fmt"
	"testing"
)

func TestRequireField(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", true},
		{"spaces", "   ", true},
		{"tabs and newlines", "\t\n", true},
		{"value", "Ada", false},
		{"padded value", "  Ada ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireField("name", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequireField(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if ve.Field != "name" {
				t.Errorf("Field = %q, want %q", ve.Field, "name")
			}
			if !errors.Is(err, ErrRequired) {
				t.Error("errors.Is(err, ErrRequired) = false, want true")
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	err := RequireField("email", "")
	if !IsValidation(fmt.Errorf("submit: %w", err)) {
		t.Error("IsValidation(wrapped) = false, want true")
	}
	if IsValidation(errors.New("other")) {
		t.Error("IsValidation(other) = true, want false")
	}
	if IsValidation(nil) {
		t.Error("IsValidation(nil) = true, want false")
	}
}
