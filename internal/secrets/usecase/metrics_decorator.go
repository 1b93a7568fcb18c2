package usecase

import (
	"context"
	"time"

	"github.com/allisson/secretstash/internal/metrics"
	secretsDomain "github.com/allisson/secretstash/internal/secrets/domain"
)

const metricsDomain = "secrets"

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// List records metrics for secret listing operations.
func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	ownerID string,
	includeValues bool,
) ([]secretsDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.List(ctx, ownerID, includeValues)
	s.record(ctx, "secret_list", start, err)
	if err == nil {
		s.metrics.RecordResultSize(ctx, metricsDomain, "secret_list", len(secrets))
	}
	return secrets, err
}

// Get records metrics for secret retrieval operations.
func (s *secretUseCaseWithMetrics) Get(
	ctx context.Context,
	ownerID, name string,
	includeValue bool,
) (secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Get(ctx, ownerID, name, includeValue)
	s.record(ctx, "secret_get", start, err)
	return secret, err
}

// Upsert records metrics for secret creation/update operations.
func (s *secretUseCaseWithMetrics) Upsert(
	ctx context.Context,
	ownerID, name, value string,
) (*secretsDomain.SecretMetadata, error) {
	start := time.Now()
	metadata, err := s.next.Upsert(ctx, ownerID, name, value)
	s.record(ctx, "secret_upsert", start, err)
	return metadata, err
}

// Delete records metrics for secret deletion operations.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, ownerID, name string) (bool, error) {
	start := time.Now()
	deleted, err := s.next.Delete(ctx, ownerID, name)
	s.record(ctx, "secret_delete", start, err)
	return deleted, err
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)
	s.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	s.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}
