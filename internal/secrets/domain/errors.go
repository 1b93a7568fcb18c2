package domain

import (
	"fmt"

	"github.com/allisson/secretstash/internal/errors"
	"github.com/allisson/secretstash/internal/validation"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no record exists for the owner and name.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")
)

// ValidationError reports a rejected name, value or owner.
type ValidationError = validation.ValidationError

// StorageError wraps a key-value store failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the cause so both the cause and errors.ErrStorage match.
func (e *StorageError) Unwrap() []error {
	return []error{errors.ErrStorage, e.Err}
}

// MalformedRecordError is returned when stored bytes cannot be decoded into a SecretRecord.
type MalformedRecordError struct {
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return "malformed secret record: " + e.Reason
}

// Unwrap lets errors.Is match errors.ErrStorage.
func (e *MalformedRecordError) Unwrap() error {
	return errors.ErrStorage
}
