// Package errors holds the sentinel errors shared by every layer. Domain packages
// wrap them with context; transports and metrics classify failures with Is or Kind
// and never inspect error strings.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the caller identity is missing.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated owner doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrCrypto indicates an encryption or decryption failure. Callers must treat it
	// as an internal failure and never expose the underlying cause.
	ErrCrypto = errors.New("crypto failure")

	// ErrStorage indicates the backing key-value store failed or returned data
	// that could not be interpreted.
	ErrStorage = errors.New("storage failure")
)

// kinds is the classification order used by Kind.
var kinds = []error{
	ErrNotFound,
	ErrInvalidInput,
	ErrConflict,
	ErrUnauthorized,
	ErrForbidden,
	ErrCrypto,
	ErrStorage,
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Kind returns the first sentinel of this package that err matches, or nil when
// err is nil or matches none of them.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
