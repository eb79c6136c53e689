package component

import (
	"errors"

	"github.com/pthm/hxhooks/lib/encoding"
)

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("component: resource not found")
	ErrDecryptFailed    = errors.New("component: parameter decryption failed")
	ErrSignatureInvalid = errors.New("component: signature verification failed")
	ErrInvalidFormat    = errors.New("component: invalid parameter format")
	ErrHydrationFailed  = errors.New("component: hydration failed")
	ErrMethodNotAllowed = errors.New("component: method not allowed")
	ErrUnbound          = errors.New("component: no lifecycle bound")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption, signature or format
// error raised while decoding props.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrInvalidFormat)
}

// wrapEncodingError maps encoding package errors to component sentinels.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}
