package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("multiple-buffers", func(t *testing.T) {
		key := bytes.Repeat([]byte{0xAB}, KeySize)
		plaintext := []byte("s3cr3t")

		Zero(key, plaintext)

		assert.Equal(t, make([]byte, KeySize), key)
		assert.Equal(t, make([]byte, len(plaintext)), plaintext)
	})

	t.Run("subslice-only", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}
		Zero(b[:2])
		assert.Equal(t, []byte{0, 0, 3, 4}, b)
	})

	t.Run("nil-and-empty", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil, []byte{}) })
		assert.NotPanics(t, func() { Zero() })
	})
}
