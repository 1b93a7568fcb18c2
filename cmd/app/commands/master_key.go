package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
	cryptoService "github.com/allisson/secretstash/internal/crypto/service"
)

// MasterKeyGenerator produces raw master key material.
type MasterKeyGenerator interface {
	GenerateMasterKey() ([]byte, error)
}

// RunCreateMasterKey generates a 32-byte master key for the given encryption version
// and prints it as a MASTER_KEYS entry. Key material is zeroed after encoding.
//
// When kmsProvider and kmsKeyURI are both set, the key is wrapped with the KMS keeper
// and the printed entry holds the KMS ciphertext. Setting only one of them is an error.
//
// Output format:
//   - MASTER_KEYS="<version>:<base64>"
//   - KMS_PROVIDER="<provider>" and KMS_KEY_URI="<uri>" in KMS mode
func RunCreateMasterKey(
	ctx context.Context,
	generator MasterKeyGenerator,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	w io.Writer,
	version uint,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri are required together")
	}
	if version == 0 {
		return fmt.Errorf("--key-version must be a positive integer")
	}

	masterKey, err := generator.GenerateMasterKey()
	if err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsProvider == "" {
		logger.Warn("master key printed in plaintext, prefer a KMS provider outside development")

		_, _ = fmt.Fprintln(w, "# Master Key Configuration (plaintext)")
		_, _ = fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintf(w, "MASTER_KEYS=\"%d:%s\"\n", version, base64.StdEncoding.EncodeToString(masterKey))
		return nil
	}

	if err := cryptoService.ValidateKeyURI(kmsProvider, kmsKeyURI); err != nil {
		return err
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	logger.Info("master key encrypted with KMS", slog.String("kms_provider", kmsProvider))

	_, _ = fmt.Fprintln(w, "# Master Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintf(w, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(w, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(w, "MASTER_KEYS=\"%d:%s\"\n", version, base64.StdEncoding.EncodeToString(ciphertext))

	return nil
}
