package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD cipher instances.
type AEADManagerService struct {
	random io.Reader
}

// NewAEADManager creates a new AEADManagerService that draws nonces from crypto/rand.
func NewAEADManager() *AEADManagerService {
	return NewAEADManagerWithRandom(rand.Reader)
}

// NewAEADManagerWithRandom creates a new AEADManagerService that draws nonces from random.
func NewAEADManagerWithRandom(random io.Reader) *AEADManagerService {
	return &AEADManagerService{random: random}
}

// CreateCipher creates an AEAD cipher instance for the given encryption version.
// Returns ErrUnsupportedVersion if the version is unknown or ErrKeyImportFailed if
// the key is not 32 bytes.
func (am *AEADManagerService) CreateCipher(key []byte, encryptionVersion uint) (AEAD, error) {
	alg, ok := cryptoDomain.AlgorithmForVersion(encryptionVersion)
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedVersion
	}

	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrKeyImportFailed
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCMWithRandom(key, am.random)
	default:
		return nil, cryptoDomain.ErrUnsupportedVersion
	}
}
