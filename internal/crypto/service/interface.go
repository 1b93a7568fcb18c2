// Package service provides the cryptographic engine of the secret store.
// It implements AES-256-GCM authenticated encryption of single plaintext
// strings under a caller-supplied master key.
package service

import (
	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher for the algorithm registered under the
	// given encryption version.
	CreateCipher(key []byte, encryptionVersion uint) (AEAD, error)
}

// Engine encrypts and decrypts single secret values.
type Engine interface {
	// Encrypt encrypts plaintext under masterKey with a fresh random nonce and
	// tags the result with the current encryption version.
	Encrypt(plaintext string, masterKey []byte) (*cryptoDomain.EncryptedValue, error)

	// Decrypt verifies and decrypts ciphertext. It never returns unauthenticated plaintext.
	Decrypt(ciphertext, nonce []byte, encryptionVersion uint, masterKey []byte) (string, error)

	// GenerateMasterKey returns a fresh 256-bit key for provisioning.
	GenerateMasterKey() ([]byte, error)
}
