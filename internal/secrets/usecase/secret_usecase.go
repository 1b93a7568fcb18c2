package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
	cryptoService "github.com/allisson/secretstash/internal/crypto/service"
	"github.com/allisson/secretstash/internal/database"
	apperrors "github.com/allisson/secretstash/internal/errors"
	secretsDomain "github.com/allisson/secretstash/internal/secrets/domain"
	"github.com/allisson/secretstash/internal/validation"
)

// DefaultListConcurrency bounds concurrent record fetches in List.
const DefaultListConcurrency = 8

// Config holds the collaborators of a SecretUseCase.
type Config struct {
	TxManager   database.TxManager
	Store       KVStore
	Keys        KeyProvider
	Engine      cryptoService.Engine
	Clock       Clock
	Random      io.Reader
	Logger      *slog.Logger
	Concurrency int
}

// secretUseCase implements the SecretUseCase interface for managing secrets.
type secretUseCase struct {
	txManager   database.TxManager
	store       KVStore
	keys        KeyProvider
	engine      cryptoService.Engine
	clock       Clock
	random      io.Reader
	logger      *slog.Logger
	concurrency int
}

// List enumerates the owner's records under the owner prefix.
func (s *secretUseCase) List(
	ctx context.Context,
	ownerID string,
	includeValues bool,
) ([]secretsDomain.Secret, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return nil, err
	}

	prefix := secretsDomain.OwnerPrefix(ownerID)
	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, storageError("list", err)
	}

	// Another owner whose ID extends this one shares the prefix; its keys carry
	// a ':' in the remainder and never form a valid name.
	keys = slices.DeleteFunc(keys, func(key string) bool {
		name, ok := strings.CutPrefix(key, prefix)
		return !ok || !validation.ValidName(name)
	})

	results := make([]secretsDomain.Secret, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, key := range keys {
		name := strings.TrimPrefix(key, prefix)

		g.Go(func() error {
			record, err := s.loadRecord(gctx, ownerID, name)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil
				}
				var malformed *secretsDomain.MalformedRecordError
				if errors.As(err, &malformed) {
					s.logger.WarnContext(gctx, "skipping malformed secret record",
						slog.String("owner_id", ownerID),
						slog.String("name", name),
						slog.String("reason", malformed.Reason),
					)
					return nil
				}
				return err
			}

			if !includeValues {
				results[i] = record.Metadata()
				return nil
			}

			value, err := s.decryptRecord(gctx, record)
			if err != nil {
				return err
			}
			results[i] = record.WithValue(value)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	secrets := slices.DeleteFunc(results, func(secret secretsDomain.Secret) bool {
		return secret == nil
	})
	slices.SortFunc(secrets, func(a, b secretsDomain.Secret) int {
		return strings.Compare(a.SecretName(), b.SecretName())
	})

	return secrets, nil
}

// Get fetches a single record. The value path decrypts first and then writes the
// access time back inside one transaction; if that write fails the plaintext is dropped.
func (s *secretUseCase) Get(
	ctx context.Context,
	ownerID, name string,
	includeValue bool,
) (secretsDomain.Secret, error) {
	if err := s.validateKey(ownerID, name); err != nil {
		return nil, err
	}

	if !includeValue {
		record, err := s.loadRecord(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		return record.Metadata(), nil
	}

	var secret *secretsDomain.SecretWithValue
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		record, err := s.loadRecord(txCtx, ownerID, name)
		if err != nil {
			return err
		}

		value, err := s.decryptRecord(txCtx, record)
		if err != nil {
			return err
		}

		accessedAt := s.clock.Now().UTC()
		record.LastAccessed = &accessedAt

		if err := s.saveRecord(txCtx, record); err != nil {
			return err
		}

		secret = record.WithValue(value)
		return nil
	})
	if err != nil {
		return nil, txError("get", err)
	}

	return secret, nil
}

// Upsert validates the input before touching the store, then encrypts the value
// with a fresh nonce and writes the new or updated record.
func (s *secretUseCase) Upsert(
	ctx context.Context,
	ownerID, name, value string,
) (*secretsDomain.SecretMetadata, error) {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validation.ValidateSecretInput(name, value); err != nil {
		return nil, err
	}

	var metadata *secretsDomain.SecretMetadata
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.loadRecord(txCtx, ownerID, name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		encrypted, err := s.encryptValue(txCtx, value)
		if err != nil {
			return err
		}

		now := s.clock.Now().UTC()

		var record *secretsDomain.SecretRecord
		if existing == nil {
			secretID, err := uuid.NewRandomFromReader(s.random)
			if err != nil {
				return err
			}
			record = &secretsDomain.SecretRecord{
				SecretID:  secretID,
				OwnerID:   ownerID,
				Name:      name,
				Version:   1,
				CreatedAt: now,
			}
		} else {
			record = existing
			record.Version++
		}

		record.Ciphertext = encrypted.Ciphertext
		record.Nonce = encrypted.Nonce
		record.EncryptionVersion = encrypted.EncryptionVersion
		record.UpdatedAt = now
		record.LastAccessed = nil

		if err := s.saveRecord(txCtx, record); err != nil {
			return err
		}

		metadata = record.Metadata()
		return nil
	})
	if err != nil {
		return nil, txError("upsert", err)
	}

	return metadata, nil
}

// Delete removes the record without decoding it, so a corrupted record can still be removed.
func (s *secretUseCase) Delete(ctx context.Context, ownerID, name string) (bool, error) {
	if err := s.validateKey(ownerID, name); err != nil {
		return false, err
	}

	key := secretsDomain.StorageKey(ownerID, name)

	var deleted bool
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.Get(txCtx, key); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return storageError("get", err)
		}

		if err := s.store.Delete(txCtx, key); err != nil {
			return storageError("delete", err)
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, txError("delete", err)
	}

	return deleted, nil
}

func (s *secretUseCase) validateKey(ownerID, name string) error {
	if err := validation.ValidateOwner(ownerID); err != nil {
		return err
	}
	return validation.ValidateName(name)
}

// loadRecord reads and decodes the record at the owner's name. A record whose
// stored identity does not match its key is treated as malformed.
func (s *secretUseCase) loadRecord(
	ctx context.Context,
	ownerID, name string,
) (*secretsDomain.SecretRecord, error) {
	data, err := s.store.Get(ctx, secretsDomain.StorageKey(ownerID, name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, storageError("get", err)
	}

	record, err := secretsDomain.DecodeRecord(data)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != ownerID || record.Name != name {
		return nil, &secretsDomain.MalformedRecordError{Reason: "record does not match its key"}
	}

	return record, nil
}

func (s *secretUseCase) saveRecord(ctx context.Context, record *secretsDomain.SecretRecord) error {
	data, err := secretsDomain.EncodeRecord(record)
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, secretsDomain.StorageKey(record.OwnerID, record.Name), data); err != nil {
		return storageError("put", err)
	}
	return nil
}

func (s *secretUseCase) encryptValue(ctx context.Context, value string) (*cryptoDomain.EncryptedValue, error) {
	masterKey, err := s.keys.MasterKey(ctx, cryptoDomain.CurrentEncryptionVersion)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(masterKey)

	return s.engine.Encrypt(value, masterKey)
}

// decryptRecord logs authentication failures as security events. Values and key
// material never reach the log.
func (s *secretUseCase) decryptRecord(ctx context.Context, record *secretsDomain.SecretRecord) (string, error) {
	if _, ok := cryptoDomain.AlgorithmForVersion(record.EncryptionVersion); !ok {
		return "", cryptoDomain.ErrUnsupportedVersion
	}

	masterKey, err := s.keys.MasterKey(ctx, record.EncryptionVersion)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(masterKey)

	value, err := s.engine.Decrypt(record.Ciphertext, record.Nonce, record.EncryptionVersion, masterKey)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrAuthenticationFailed) {
			s.logger.WarnContext(ctx, "secret authentication failed",
				slog.String("owner_id", record.OwnerID),
				slog.String("name", record.Name),
				slog.String("secret_id", record.SecretID.String()),
				slog.Uint64("encryption_version", uint64(record.EncryptionVersion)),
			)
		}
		return "", err
	}

	return value, nil
}

// storageError wraps a key-value failure unless it is already a StorageError.
func storageError(op string, err error) error {
	var storageErr *secretsDomain.StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &secretsDomain.StorageError{Op: op, Err: err}
}

// txError classifies a WithTx failure. Errors raised inside fn already carry a
// kind; begin and commit failures do not and become storage errors.
func txError(op string, err error) error {
	if apperrors.Kind(err) != nil {
		return err
	}
	return storageError(op, err)
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
// Clock, Random, Logger and Concurrency fall back to the wall clock, crypto/rand,
// slog.Default and DefaultListConcurrency.
func NewSecretUseCase(cfg Config) SecretUseCase {
	uc := &secretUseCase{
		txManager:   cfg.TxManager,
		store:       cfg.Store,
		keys:        cfg.Keys,
		engine:      cfg.Engine,
		clock:       cfg.Clock,
		random:      cfg.Random,
		logger:      cfg.Logger,
		concurrency: cfg.Concurrency,
	}
	if uc.clock == nil {
		uc.clock = NewSystemClock()
	}
	if uc.random == nil {
		uc.random = rand.Reader
	}
	if uc.logger == nil {
		uc.logger = slog.Default()
	}
	if uc.concurrency <= 0 {
		uc.concurrency = DefaultListConcurrency
	}
	return uc
}
