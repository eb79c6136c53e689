package component

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pthm/hxhooks/lib/encoding"
)

func TestSentinelErrorsDistinct(t *testing.T) {
	errs := []error{
		ErrNotFound,
		ErrDecryptFailed,
		ErrSignatureInvalid,
		ErrInvalidFormat,
		ErrHydrationFailed,
		ErrMethodNotAllowed,
		ErrUnbound,
	}

	for i, err1 := range errs {
		if !strings.HasPrefix(err1.Error(), "component:") {
			t.Errorf("error %q should start with 'component:'", err1)
		}
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("wrapped: %w", ErrNotFound), true},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.expect {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestIsDecryptionError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrDecryptFailed", ErrDecryptFailed, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"ErrInvalidFormat", ErrInvalidFormat, true},
		{"wrapped ErrSignatureInvalid", fmt.Errorf("wrapped: %w", ErrSignatureInvalid), true},
		{"ErrNotFound", ErrNotFound, false},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDecryptionError(tt.err); got != tt.expect {
				t.Errorf("IsDecryptionError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestWrapEncodingError(t *testing.T) {
	other := errors.New("other")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"format", encoding.ErrInvalidFormat, ErrInvalidFormat},
		{"signature", fmt.Errorf("x: %w", encoding.ErrSignatureInvalid), ErrSignatureInvalid},
		{"decrypt", encoding.ErrDecryptFailed, ErrDecryptFailed},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapEncodingError(tt.err); !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("wrapEncodingError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
