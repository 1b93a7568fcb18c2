package service

import (
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
)

// engineService implements Engine on top of an AEADManager.
type engineService struct {
	aeadManager AEADManager
	random      io.Reader
}

// NewEngine creates an Engine backed by crypto/rand.
func NewEngine() Engine {
	return NewEngineWithRandom(rand.Reader)
}

// NewEngineWithRandom creates an Engine that reads nonces and generated keys from random.
func NewEngineWithRandom(random io.Reader) Engine {
	return &engineService{
		aeadManager: NewAEADManagerWithRandom(random),
		random:      random,
	}
}

// Encrypt encrypts the UTF-8 bytes of plaintext and tags the result with
// cryptoDomain.CurrentEncryptionVersion. The engine keeps no reference to masterKey.
func (e *engineService) Encrypt(plaintext string, masterKey []byte) (*cryptoDomain.EncryptedValue, error) {
	cipher, err := e.aeadManager.CreateCipher(masterKey, cryptoDomain.CurrentEncryptionVersion)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := cipher.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedValue{
		Ciphertext:        ciphertext,
		Nonce:             nonce,
		EncryptionVersion: cryptoDomain.CurrentEncryptionVersion,
	}, nil
}

// Decrypt verifies and decrypts ciphertext produced by Encrypt.
func (e *engineService) Decrypt(
	ciphertext, nonce []byte,
	encryptionVersion uint,
	masterKey []byte,
) (string, error) {
	cipher, err := e.aeadManager.CreateCipher(masterKey, encryptionVersion)
	if err != nil {
		return "", err
	}

	plaintext, err := cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(plaintext)

	return string(plaintext), nil
}

// GenerateMasterKey returns 32 bytes read from the engine's random source.
func (e *engineService) GenerateMasterKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(e.random, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}
