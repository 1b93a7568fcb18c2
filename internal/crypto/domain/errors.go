package domain

import (
	"github.com/allisson/secretstash/internal/errors"
)

// Cryptographic operation error definitions.
//
// All three wrap errors.ErrCrypto so the presentation layer can map them to an
// internal failure without leaking which check failed.
var (
	// ErrKeyImportFailed indicates the master key is malformed (not exactly 32 bytes).
	ErrKeyImportFailed = errors.Wrap(errors.ErrCrypto, "key import failed")

	// ErrAuthenticationFailed indicates the authentication tag did not verify.
	//
	// This can occur due to:
	//   - Ciphertext has been tampered with or is corrupted
	//   - Wrong master key used
	//   - Nonce does not match the one used for encryption
	//
	// It is a security-relevant event and must never be retried silently.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrCrypto, "authentication failed")

	// ErrUnsupportedVersion indicates the encryption version is not recognized by
	// this deployment.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrCrypto, "unsupported encryption version")
)

// Master key provisioning error definitions.
var (
	// ErrMasterKeysNotSet indicates the MASTER_KEYS configuration is empty.
	ErrMasterKeysNotSet = errors.New("MASTER_KEYS not set")

	// ErrInvalidMasterKeysFormat indicates an entry is not in "<version>:<base64>" form.
	ErrInvalidMasterKeysFormat = errors.New("invalid MASTER_KEYS format")

	// ErrInvalidMasterKeyBase64 indicates a master key could not be base64-decoded.
	ErrInvalidMasterKeyBase64 = errors.New("invalid master key base64")

	// ErrInvalidKeySize indicates a configured master key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrDuplicateMasterKeyVersion indicates the same version appears twice.
	ErrDuplicateMasterKeyVersion = errors.New("duplicate master key version")

	// ErrMasterKeyNotFound indicates no master key is registered for a version.
	ErrMasterKeyNotFound = errors.Wrap(errors.ErrCrypto, "master key not found")
)
