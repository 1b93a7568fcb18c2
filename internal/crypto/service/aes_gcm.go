package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// Security properties:
//   - 256-bit key size
//   - 12-byte nonce (96 bits, randomly generated per encryption)
//   - 16-byte authentication tag (128 bits, appended to ciphertext)
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines as long as the random source is. Each encryption reads a new nonce.
type AESGCMCipher struct {
	aead   cipher.AEAD
	random io.Reader
}

// NewAESGCM creates a new AES-256-GCM cipher instance reading nonces from crypto/rand.
//
// The key must be exactly 32 bytes (256 bits); any other size returns
// cryptoDomain.ErrKeyImportFailed.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	return NewAESGCMWithRandom(key, rand.Reader)
}

// NewAESGCMWithRandom creates an AES-256-GCM cipher that reads nonces from random.
// Tests use it to substitute a deterministic source; production code passes crypto/rand.
func NewAESGCMWithRandom(key []byte, random io.Reader) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be exactly %d bytes", cryptoDomain.ErrKeyImportFailed, cryptoDomain.KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", cryptoDomain.ErrKeyImportFailed, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", cryptoDomain.ErrKeyImportFailed, err)
	}

	return &AESGCMCipher{aead: aead, random: random}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional authenticated data.
//
// A unique 12-byte nonce is read from the random source for each encryption. It is
// never derived from the plaintext or record metadata, so encrypting the same value
// twice yields unrelated ciphertexts. The returned ciphertext has the 16-byte
// authentication tag appended.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := io.ReadFull(a.random, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided nonce and AAD.
//
// The authentication tag is verified before any plaintext is returned. A nonce of
// the wrong length, a truncated ciphertext or a failed tag check all return
// cryptoDomain.ErrAuthenticationFailed.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() || len(ciphertext) < a.aead.Overhead() {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
