package domain

// EncryptedValue is the output of a single encryption: the ciphertext with its
// authentication tag appended, the nonce used, and the version of the key
// material that produced it. None of the three is meaningful without the others.
type EncryptedValue struct {
	Ciphertext        []byte
	Nonce             []byte
	EncryptionVersion uint
}
