// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/secretstash/internal/validation"
)

// UpsertSecretRequest contains the value of a secret to create or update.
// The name is extracted from the URL parameter, not the request body.
type UpsertSecretRequest struct {
	Value string `json:"value"`
}

// Validate checks if the upsert secret request is valid.
func (r *UpsertSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.SecretValue,
		),
	)
}

// ValidateSecretName validates a secret name taken from the URL.
func ValidateSecretName(name string) error {
	return validation.Validate(name, validation.Required, customValidation.SecretName)
}
