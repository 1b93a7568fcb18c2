package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
	cryptoService "github.com/allisson/secretstash/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// Engine returns the AES-256-GCM crypto engine.
func (c *Container) Engine() cryptoService.Engine {
	c.engineInit.Do(func() {
		c.engine = cryptoService.NewEngine()
	})
	return c.engine
}

// MasterKeyChain returns the master keys loaded from MASTER_KEYS, unwrapped through
// the KMS when KMS_PROVIDER is set.
func (c *Container) MasterKeyChain(ctx context.Context) (*cryptoDomain.MasterKeyChain, error) {
	var err error
	c.masterKeyChainInit.Do(func() {
		c.masterKeyChain, err = c.initMasterKeyChain(ctx)
		if err != nil {
			c.setInitError("masterKeyChain", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("masterKeyChain"); storedErr != nil {
		return nil, storedErr
	}
	return c.masterKeyChain, nil
}

func (c *Container) initMasterKeyChain(ctx context.Context) (*cryptoDomain.MasterKeyChain, error) {
	var keeper cryptoDomain.KMSKeeper
	if c.config.KMSEnabled() {
		if err := cryptoService.ValidateKeyURI(c.config.KMSProvider, c.config.KMSKeyURI); err != nil {
			return nil, err
		}
		opened, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open kms keeper: %w", err)
		}
		defer func() {
			_ = opened.Close()
		}()
		keeper = opened
	}

	chain, err := cryptoDomain.LoadMasterKeyChain(ctx, c.config.MasterKeys, keeper)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key chain: %w", err)
	}

	c.Logger().Info("master key chain loaded",
		slog.Any("versions", chain.Versions()),
		slog.String("kms_provider", c.config.KMSProvider),
	)

	return chain, nil
}
