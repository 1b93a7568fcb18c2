// Package usecase defines the interfaces and implementations for secret management use cases.
// Use cases orchestrate the key-value store, the key provider and the crypto engine to
// store per-owner secrets encrypted at rest.
package usecase

import (
	"context"
	"time"

	secretsDomain "github.com/allisson/secretstash/internal/secrets/domain"
)

// KVStore is the key-value collaborator that holds encoded secret records.
type KVStore interface {
	// Get returns the stored bytes or an error matching apperrors.ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns every key starting with prefix, in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// KeyProvider supplies master key bytes for an encryption version. Callers own
// the returned slice and zero it after use.
type KeyProvider interface {
	MasterKey(ctx context.Context, encryptionVersion uint) ([]byte, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SecretUseCase defines the interface for secret management business logic.
// Every operation takes an already authenticated owner ID.
type SecretUseCase interface {
	// List returns the owner's secrets as *SecretMetadata, or as *SecretWithValue when
	// includeValues is true. Records that cannot be decoded are skipped. Any decryption
	// failure aborts the call.
	List(ctx context.Context, ownerID string, includeValues bool) ([]secretsDomain.Secret, error)

	// Get returns a single secret. With includeValue it decrypts the value and records
	// the access time before returning. Returns secretsDomain.ErrSecretNotFound when absent.
	Get(ctx context.Context, ownerID, name string, includeValue bool) (secretsDomain.Secret, error)

	// Upsert creates the secret at version 1 or replaces its value and bumps the version.
	Upsert(ctx context.Context, ownerID, name, value string) (*secretsDomain.SecretMetadata, error)

	// Delete removes the secret and reports whether it existed.
	Delete(ctx context.Context, ownerID, name string) (bool, error)
}

// systemClock implements Clock with time.Now.
type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock, in UTC.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
