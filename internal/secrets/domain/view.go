package domain

import "time"

// Secret is a caller-facing view of a secret record. It is implemented by
// *SecretMetadata and *SecretWithValue only.
type Secret interface {
	SecretName() string
	SecretVersion() uint
	isSecret()
}

// SecretMetadata describes a secret without its value.
type SecretMetadata struct {
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      uint
	LastAccessed *time.Time
}

// SecretWithValue carries a decrypted secret value.
type SecretWithValue struct {
	Name      string
	Value     string
	Version   uint
	CreatedAt time.Time
}

func (m *SecretMetadata) SecretName() string  { return m.Name }
func (m *SecretMetadata) SecretVersion() uint { return m.Version }
func (*SecretMetadata) isSecret()             {}

func (v *SecretWithValue) SecretName() string  { return v.Name }
func (v *SecretWithValue) SecretVersion() uint { return v.Version }
func (*SecretWithValue) isSecret()             {}
