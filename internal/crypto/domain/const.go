package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of encrypted data.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// Key features:
	//   - 256-bit key size
	//   - 12-byte nonce (96 bits)
	//   - 16-byte authentication tag
	AESGCM Algorithm = "aes-gcm"
)

const (
	// KeySize is the size in bytes of every master key (256 bits).
	KeySize = 32

	// NonceSize is the size in bytes of the per-encryption nonce (96 bits).
	NonceSize = 12

	// TagSize is the size in bytes of the authentication tag appended to ciphertext.
	TagSize = 16
)

// EncryptionVersionV1 identifies ciphertext produced by AES-256-GCM under the
// master key registered as version 1.
const EncryptionVersionV1 uint = 1

// CurrentEncryptionVersion is the version tag written on every new ciphertext.
const CurrentEncryptionVersion = EncryptionVersionV1

// versionAlgorithms maps each known encryption version to the algorithm that
// produced it. A version missing from this table cannot be decrypted.
var versionAlgorithms = map[uint]Algorithm{
	EncryptionVersionV1: AESGCM,
}

// AlgorithmForVersion returns the algorithm registered for an encryption version.
func AlgorithmForVersion(version uint) (Algorithm, bool) {
	alg, ok := versionAlgorithms[version]
	return alg, ok
}
