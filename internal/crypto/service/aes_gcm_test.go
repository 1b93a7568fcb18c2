package service

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewAESGCM(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		cipher, err := NewAESGCM(newTestKey(t))
		require.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("short key", func(t *testing.T) {
		cipher, err := NewAESGCM(make([]byte, 16))
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyImportFailed)
		assert.Nil(t, cipher)
	})
}

func TestAESGCMCipher_EncryptDecrypt(t *testing.T) {
	cipher, err := NewAESGCM(newTestKey(t))
	require.NoError(t, err)

	t.Run("round trip without aad", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("hello"), nil)
		require.NoError(t, err)
		assert.Len(t, nonce, cryptoDomain.NonceSize)
		assert.Len(t, ciphertext, len("hello")+cryptoDomain.TagSize)

		plaintext, err := cipher.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), plaintext)
	})

	t.Run("aad mismatch", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("hello"), []byte("a"))
		require.NoError(t, err)

		_, err = cipher.Decrypt(ciphertext, nonce, []byte("b"))
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("wrong nonce length", func(t *testing.T) {
		ciphertext, _, err := cipher.Encrypt([]byte("hello"), nil)
		require.NoError(t, err)

		_, err = cipher.Decrypt(ciphertext, make([]byte, 8), nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, nonce, err := cipher.Encrypt([]byte("hello"), nil)
		require.NoError(t, err)

		_, err = cipher.Decrypt([]byte{1, 2, 3}, nonce, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})
}

func TestAESGCMCipher_DeterministicRandom(t *testing.T) {
	fixed := bytes.Repeat([]byte{0x42}, cryptoDomain.NonceSize)
	cipher, err := NewAESGCMWithRandom(newTestKey(t), bytes.NewReader(fixed))
	require.NoError(t, err)

	_, nonce, err := cipher.Encrypt([]byte("x"), nil)
	require.NoError(t, err)
	assert.Equal(t, fixed, nonce)

	// The reader is exhausted now.
	_, _, err = cipher.Encrypt([]byte("x"), nil)
	assert.Error(t, err)
}

func TestAESGCMCipher_RandomFailure(t *testing.T) {
	cipher, err := NewAESGCMWithRandom(newTestKey(t), failingReader{})
	require.NoError(t, err)

	ciphertext, nonce, err := cipher.Encrypt([]byte("x"), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate nonce")
	assert.Nil(t, ciphertext)
	assert.Nil(t, nonce)
}
