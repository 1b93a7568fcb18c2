// Package domain defines the core domain models and types for per-owner secret storage.
// Each secret is a single encrypted record addressed by owner and name, updated in
// place with a monotonically increasing version number.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// KeyPrefix is the namespace of every secret record in the key-value store.
const KeyPrefix = "secrets:"

// SecretRecord is the persisted form of a secret. It never holds plaintext.
type SecretRecord struct {
	// SecretID is assigned on creation and kept across updates.
	SecretID uuid.UUID
	// OwnerID is the authenticated owner the secret belongs to.
	OwnerID string
	// Name is unique per owner.
	Name string
	// Ciphertext includes the 16-byte authentication tag.
	Ciphertext []byte
	// Nonce is the 12-byte AEAD nonce used for Ciphertext.
	Nonce []byte
	// EncryptionVersion selects the algorithm and master key used for Ciphertext.
	EncryptionVersion uint
	// Version starts at 1 and increases by one on every update.
	Version   uint
	CreatedAt time.Time
	UpdatedAt time.Time
	// LastAccessed is set when the value is retrieved and cleared on update.
	LastAccessed *time.Time
}

// StorageKey returns the key-value key for the owner's secret name.
func StorageKey(ownerID, name string) string {
	return OwnerPrefix(ownerID) + name
}

// OwnerPrefix returns the key prefix shared by all of an owner's secrets.
func OwnerPrefix(ownerID string) string {
	return KeyPrefix + ownerID + ":"
}

// Metadata returns the value-free view of the record.
func (r *SecretRecord) Metadata() *SecretMetadata {
	return &SecretMetadata{
		Name:         r.Name,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Version:      r.Version,
		LastAccessed: r.LastAccessed,
	}
}

// WithValue returns the view carrying the decrypted value.
func (r *SecretRecord) WithValue(value string) *SecretWithValue {
	return &SecretWithValue{
		Name:      r.Name,
		Value:     value,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
	}
}
