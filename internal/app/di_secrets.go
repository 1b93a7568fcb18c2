package app

import (
	"context"
	"fmt"

	"github.com/allisson/secretstash/internal/database"
	secretsHTTP "github.com/allisson/secretstash/internal/secrets/http"
	secretsRepository "github.com/allisson/secretstash/internal/secrets/repository"
	secretsUseCase "github.com/allisson/secretstash/internal/secrets/usecase"
)

// KVStore returns the key-value store for the configured driver.
func (c *Container) KVStore() (secretsUseCase.KVStore, error) {
	var err error
	c.kvStoreInit.Do(func() {
		c.kvStore, err = c.initKVStore()
		if err != nil {
			c.setInitError("kvStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("kvStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.kvStore, nil
}

// SecretUseCase returns the secret use case, wrapped with metrics when enabled.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.setInitError("secretUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secretUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// SecretHandler returns the HTTP handler for secret management operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		c.secretHandler, err = c.initSecretHandler()
		if err != nil {
			c.setInitError("secretHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secretHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// initKVStore creates the key-value store based on the database driver.
func (c *Container) initKVStore() (secretsUseCase.KVStore, error) {
	if c.config.DBDriver == database.DriverMemory {
		return secretsRepository.NewMemoryKVStore(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for kv store: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return secretsRepository.NewPostgreSQLKVStore(db), nil
	case database.DriverMySQL:
		return secretsRepository.NewMySQLKVStore(db), nil
	case database.DriverSQLite:
		return secretsRepository.NewSQLiteKVStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretUseCase creates the secret use case with all its dependencies.
func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	kvStore, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for secret use case: %w", err)
	}

	masterKeyChain, err := c.MasterKeyChain(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get master key chain for secret use case: %w", err)
	}

	baseUseCase := secretsUseCase.NewSecretUseCase(secretsUseCase.Config{
		TxManager:   txManager,
		Store:       kvStore,
		Keys:        masterKeyChain,
		Engine:      c.Engine(),
		Logger:      c.Logger(),
		Concurrency: c.config.ListConcurrency,
	})

	if !c.config.MetricsEnabled {
		return baseUseCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
	}
	return secretsUseCase.NewSecretUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}

// initSecretHandler creates the secret HTTP handler with all its dependencies.
func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(secretUseCase, c.Logger()), nil
}
