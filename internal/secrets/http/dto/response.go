package dto

import (
	"time"

	secretsDomain "github.com/allisson/secretstash/internal/secrets/domain"
)

// SecretMetadataResponse describes a secret without its value.
type SecretMetadataResponse struct {
	Name         string     `json:"name"`
	Version      uint       `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastAccessed *time.Time `json:"last_accessed"`
}

// SecretValueResponse carries a decrypted secret value.
type SecretValueResponse struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Version   uint      `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// ListSecretsResponse wraps a list of secrets. Each item is either a
// SecretMetadataResponse or a SecretValueResponse.
type ListSecretsResponse struct {
	Data []any `json:"data"`
}

// MapMetadataToResponse converts secret metadata to an API response.
func MapMetadataToResponse(metadata *secretsDomain.SecretMetadata) SecretMetadataResponse {
	return SecretMetadataResponse{
		Name:         metadata.Name,
		Version:      metadata.Version,
		CreatedAt:    metadata.CreatedAt,
		UpdatedAt:    metadata.UpdatedAt,
		LastAccessed: metadata.LastAccessed,
	}
}

// MapSecretToResponse converts either secret view to its API response.
func MapSecretToResponse(secret secretsDomain.Secret) any {
	switch s := secret.(type) {
	case *secretsDomain.SecretWithValue:
		return SecretValueResponse{
			Name:      s.Name,
			Value:     s.Value,
			Version:   s.Version,
			CreatedAt: s.CreatedAt,
		}
	case *secretsDomain.SecretMetadata:
		return MapMetadataToResponse(s)
	default:
		return nil
	}
}

// MapSecretsToListResponse converts a slice of secret views to a list response.
func MapSecretsToListResponse(secrets []secretsDomain.Secret) ListSecretsResponse {
	data := make([]any, 0, len(secrets))
	for _, secret := range secrets {
		data = append(data, MapSecretToResponse(secret))
	}

	return ListSecretsResponse{
		Data: data,
	}
}
