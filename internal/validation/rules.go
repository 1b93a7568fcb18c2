// Package validation provides the secret input rules and custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/secretstash/internal/errors"
)

const (
	// MaxNameLength is the longest accepted secret name.
	MaxNameLength = 64
	// MaxValueBytes is the largest accepted secret value, in UTF-8 bytes.
	MaxValueBytes = 10240
	// MaxOwnerIDBytes is the longest accepted owner identifier, in UTF-8 bytes.
	// A full storage key then fits the 512 character kv_entries.entry_key column.
	MaxOwnerIDBytes = 256
)

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidName reports whether name is 1 to 64 characters drawn from letters, digits, '_' and '-'.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// ValidValue reports whether the UTF-8 byte length of value is in [1, MaxValueBytes].
func ValidValue(value string) bool {
	return len(value) >= 1 && len(value) <= MaxValueBytes
}

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match apperrors.ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ValidateOwner rejects a blank owner identifier or one longer than MaxOwnerIDBytes.
func ValidateOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return &ValidationError{Field: "owner_id", Reason: "must not be blank"}
	}
	if len(ownerID) > MaxOwnerIDBytes {
		return &ValidationError{
			Field:  "owner_id",
			Reason: fmt.Sprintf("must be at most %d bytes", MaxOwnerIDBytes),
		}
	}
	return nil
}

// ValidateName returns a *ValidationError when name fails ValidName.
func ValidateName(name string) error {
	if !ValidName(name) {
		return &ValidationError{
			Field:  "name",
			Reason: "must be 1-64 characters of letters, digits, '_' or '-'",
		}
	}
	return nil
}

// ValidateValue returns a *ValidationError when value fails ValidValue.
func ValidateValue(value string) error {
	if !ValidValue(value) {
		return &ValidationError{
			Field:  "value",
			Reason: fmt.Sprintf("must be between 1 and %d bytes", MaxValueBytes),
		}
	}
	return nil
}

// ValidateSecretInput checks name before value and returns the first failure.
func ValidateSecretInput(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return ValidateValue(value)
}

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// SecretName validates a secret name for request DTOs.
var SecretName = validation.NewStringRuleWithError(
	ValidName,
	validation.NewError(
		"validation_secret_name",
		"must be 1-64 characters of letters, digits, '_' or '-'",
	),
)

// SecretValue validates a secret value length for request DTOs.
// Empty strings pass so that validation.Required reports them.
var SecretValue = validation.NewStringRuleWithError(
	func(s string) bool {
		return len(s) <= MaxValueBytes
	},
	validation.NewError("validation_secret_value", "must be at most 10240 bytes"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
