package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// MasterKey is the 256-bit key material registered for one encryption version.
//
// Master keys are provisioned outside this service (environment variables,
// optionally wrapped by a KMS) and are never persisted by it.
type MasterKey struct {
	Version uint
	Key     []byte
}

// MasterKeyChain holds the master keys known to this deployment, addressed by
// encryption version. It is the key-provisioning collaborator of the secret store.
//
// Thread safety: The keychain uses sync.Map internally for concurrent access.
type MasterKeyChain struct {
	keys sync.Map
}

// NewMasterKeyChain creates a keychain from already decoded master keys.
// Key bytes are copied; callers may zero their slices afterwards.
func NewMasterKeyChain(keys []*MasterKey) *MasterKeyChain {
	mkc := &MasterKeyChain{}
	for _, mk := range keys {
		mkc.keys.Store(mk.Version, &MasterKey{Version: mk.Version, Key: slices.Clone(mk.Key)})
	}
	return mkc
}

// Get retrieves a master key from the keychain by its encryption version.
func (m *MasterKeyChain) Get(version uint) (*MasterKey, bool) {
	if masterKey, ok := m.keys.Load(version); ok {
		return masterKey.(*MasterKey), ok
	}

	return nil, false
}

// MasterKey returns a copy of the key bytes for the given encryption version.
// The caller owns the copy and should zero it once the operation completes.
func (m *MasterKeyChain) MasterKey(_ context.Context, version uint) ([]byte, error) {
	mk, ok := m.Get(version)
	if !ok {
		return nil, fmt.Errorf("%w: version %d", ErrMasterKeyNotFound, version)
	}
	return slices.Clone(mk.Key), nil
}

// Versions returns the registered encryption versions in ascending order.
func (m *MasterKeyChain) Versions() []uint {
	var versions []uint
	m.keys.Range(func(key, _ any) bool {
		versions = append(versions, key.(uint))
		return true
	})
	slices.Sort(versions)
	return versions
}

// Close zeroes all master keys and clears the keychain.
func (m *MasterKeyChain) Close() {
	m.keys.Range(func(_, value any) bool {
		if mk, ok := value.(*MasterKey); ok {
			Zero(mk.Key)
		}
		return true
	})
	m.keys.Clear()
}

// LoadMasterKeyChainFromEnv loads master keys from the MASTER_KEYS environment variable.
// See LoadMasterKeyChain for the accepted format.
func LoadMasterKeyChainFromEnv(ctx context.Context, keeper KMSKeeper) (*MasterKeyChain, error) {
	return LoadMasterKeyChain(ctx, os.Getenv("MASTER_KEYS"), keeper)
}

// LoadMasterKeyChain parses a comma-separated list of "<version>:<base64>" entries.
//
// Format example:
//
//	MASTER_KEYS="1:YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXoxMjM0NTY3OA=="
//
// When keeper is nil each entry is the base64 of the raw 32-byte key. When a KMS
// keeper is supplied each entry is the base64 of the KMS ciphertext of the key,
// which is unwrapped through the keeper.
//
// The chain must contain the key for CurrentEncryptionVersion, otherwise no new
// secret could ever be written. On any error the partially built chain is closed.
func LoadMasterKeyChain(ctx context.Context, raw string, keeper KMSKeeper) (*MasterKeyChain, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMasterKeysNotSet
	}

	mkc := &MasterKeyChain{}

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 {
			mkc.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidMasterKeysFormat, part)
		}

		version, err := strconv.ParseUint(p[0], 10, 32)
		if err != nil || version == 0 {
			mkc.Close()
			return nil, fmt.Errorf("%w: version %q must be a positive integer", ErrInvalidMasterKeysFormat, p[0])
		}

		if _, exists := mkc.Get(uint(version)); exists {
			mkc.Close()
			return nil, fmt.Errorf("%w: %d", ErrDuplicateMasterKeyVersion, version)
		}

		decoded, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			mkc.Close()
			return nil, fmt.Errorf("%w for version %d: %v", ErrInvalidMasterKeyBase64, version, err)
		}

		key := decoded
		if keeper != nil {
			key, err = keeper.Decrypt(ctx, decoded)
			if err != nil {
				mkc.Close()
				return nil, fmt.Errorf("failed to decrypt master key version %d with KMS: %w", version, err)
			}
		}

		if len(key) != KeySize {
			Zero(key)
			mkc.Close()
			return nil, fmt.Errorf(
				"%w: master key version %d must be %d bytes, got %d",
				ErrInvalidKeySize,
				version,
				KeySize,
				len(key),
			)
		}

		mkc.keys.Store(uint(version), &MasterKey{Version: uint(version), Key: slices.Clone(key)})
		Zero(key)
	}

	if _, ok := mkc.Get(CurrentEncryptionVersion); !ok {
		mkc.Close()
		return nil, fmt.Errorf("%w: version %d is required", ErrMasterKeyNotFound, CurrentEncryptionVersion)
	}

	return mkc, nil
}
