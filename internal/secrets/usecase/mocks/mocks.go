// Package mocks provides mock implementations of the secret use case collaborators for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/secretstash/internal/secrets/domain"
)

// MockSecretUseCase is a mock implementation of SecretUseCase for testing.
type MockSecretUseCase struct {
	mock.Mock
}

// NewMockSecretUseCase creates a MockSecretUseCase whose expectations are asserted on cleanup.
func NewMockSecretUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecretUseCase {
	m := &MockSecretUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// List mocks the List method of SecretUseCase.
func (m *MockSecretUseCase) List(
	ctx context.Context,
	ownerID string,
	includeValues bool,
) ([]secretsDomain.Secret, error) {
	args := m.Called(ctx, ownerID, includeValues)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]secretsDomain.Secret), args.Error(1)
}

// Get mocks the Get method of SecretUseCase.
func (m *MockSecretUseCase) Get(
	ctx context.Context,
	ownerID, name string,
	includeValue bool,
) (secretsDomain.Secret, error) {
	args := m.Called(ctx, ownerID, name, includeValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(secretsDomain.Secret), args.Error(1)
}

// Upsert mocks the Upsert method of SecretUseCase.
func (m *MockSecretUseCase) Upsert(
	ctx context.Context,
	ownerID, name, value string,
) (*secretsDomain.SecretMetadata, error) {
	args := m.Called(ctx, ownerID, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretMetadata), args.Error(1)
}

// Delete mocks the Delete method of SecretUseCase.
func (m *MockSecretUseCase) Delete(ctx context.Context, ownerID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

// MockKVStore is a mock implementation of KVStore for testing.
type MockKVStore struct {
	mock.Mock
}

// Get mocks the Get method of KVStore.
func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Put mocks the Put method of KVStore.
func (m *MockKVStore) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Delete mocks the Delete method of KVStore.
func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// List mocks the List method of KVStore.
func (m *MockKVStore) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockKeyProvider is a mock implementation of KeyProvider for testing.
type MockKeyProvider struct {
	mock.Mock
}

// MasterKey mocks the MasterKey method of KeyProvider. The returned key is a copy
// so that callers zeroing it do not alter the configured value.
func (m *MockKeyProvider) MasterKey(ctx context.Context, encryptionVersion uint) ([]byte, error) {
	args := m.Called(ctx, encryptionVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return append([]byte(nil), args.Get(0).([]byte)...), args.Error(1)
}
