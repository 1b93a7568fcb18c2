package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/allisson/secretstash/internal/errors"
)

// Operation status labels.
const (
	StatusSuccess      = "success"
	StatusNotFound     = "not_found"
	StatusInvalidInput = "invalid_input"
	StatusCryptoError  = "crypto_error"
	StatusStorageError = "storage_error"
	StatusError        = "error"
)

// BusinessMetrics records secret store operation metrics.
type BusinessMetrics interface {
	// RecordOperation records an operation with its status, e.g. ("secrets", "secret_get", "success").
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordResultSize records how many items an operation returned.
	RecordResultSize(ctx context.Context, domain, operation string, size int)
}

// StatusFromError classifies an operation error into a low-cardinality status label.
func StatusFromError(err error) string {
	if err == nil {
		return StatusSuccess
	}

	switch apperrors.Kind(err) {
	case apperrors.ErrNotFound:
		return StatusNotFound
	case apperrors.ErrInvalidInput:
		return StatusInvalidInput
	case apperrors.ErrCrypto:
		return StatusCryptoError
	case apperrors.ErrStorage:
		return StatusStorageError
	default:
		return StatusError
	}
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	resultSizeHisto  metric.Int64Histogram
}

// NewBusinessMetrics creates a BusinessMetrics backed by the given meter provider.
// Metric names are prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of secret store operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of secret store operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	resultSizeHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_operation_result_size", namespace),
		metric.WithDescription("Number of secrets returned by an operation"),
		metric.WithUnit("{secret}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create result size histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		resultSizeHisto:  resultSizeHisto,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(operationAttributes(domain, operation, status)...))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(
		ctx,
		duration.Seconds(),
		metric.WithAttributes(operationAttributes(domain, operation, status)...),
	)
}

func (b *businessMetrics) RecordResultSize(ctx context.Context, domain, operation string, size int) {
	b.resultSizeHisto.Record(ctx, int64(size),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
		),
	)
}

func operationAttributes(domain, operation, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics discards everything. Used when METRICS_ENABLED is false.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordResultSize(ctx context.Context, domain, operation string, size int) {}
