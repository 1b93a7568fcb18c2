package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/secretstash/internal/crypto/domain"
)

// kmsSchemes maps a KMS_PROVIDER name to the URI scheme its gocloud driver registers.
var kmsSchemes = map[string]string{
	"localsecrets":  "base64key",
	"gcpkms":        "gcpkms",
	"awskms":        "awskms",
	"azurekeyvault": "azurekeyvault",
	"hashivault":    "hashivault",
}

// KMSService opens the keeper that wraps master keys at rest.
type KMSService interface {
	// OpenKeeper opens the keeper addressed by keyURI. The caller closes it.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// ValidateKeyURI checks that provider is supported and that keyURI uses its scheme,
// so a misconfigured pair fails before any KMS call is made.
func ValidateKeyURI(provider, keyURI string) error {
	scheme, ok := kmsSchemes[provider]
	if !ok {
		return fmt.Errorf("unsupported KMS provider %q", provider)
	}
	if !strings.HasPrefix(keyURI, scheme+"://") {
		return fmt.Errorf("KMS key URI for provider %q must start with %s://", provider, scheme)
	}
	return nil
}
