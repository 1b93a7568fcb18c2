package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/secretstash/internal/errors"
)

// assertBizMetricLine checks that the Prometheus output contains a metric matching the
// given name, partial label pattern and value. OTel scope labels may appear in between.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Nil", err: nil, expected: StatusSuccess},
		{name: "NotFound", err: apperrors.Wrap(apperrors.ErrNotFound, "secret not found"), expected: StatusNotFound},
		{name: "InvalidInput", err: apperrors.ErrInvalidInput, expected: StatusInvalidInput},
		{name: "Crypto", err: apperrors.Wrap(apperrors.ErrCrypto, "authentication failed"), expected: StatusCryptoError},
		{
			name:     "Storage",
			err:      fmt.Errorf("put: %w", apperrors.ErrStorage),
			expected: StatusStorageError,
		},
		{name: "Other", err: errors.New("boom"), expected: StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFromError(tt.err))
		})
	}
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)
	assert.NotPanics(t, func() {
		noOpMetrics.RecordOperation(context.Background(), "secrets", "secret_get", StatusSuccess)
		noOpMetrics.RecordDuration(context.Background(), "secrets", "secret_get", time.Millisecond, StatusSuccess)
		noOpMetrics.RecordResultSize(context.Background(), "secrets", "secret_list", 3)
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordOperation(ctx, "secrets", "secret_upsert", StatusSuccess)
	bm.RecordOperation(ctx, "secrets", "secret_upsert", StatusSuccess)
	bm.RecordOperation(ctx, "secrets", "secret_get", StatusNotFound)
	bm.RecordOperation(ctx, "secrets", "secret_list", StatusCryptoError)

	bm.RecordDuration(ctx, "secrets", "secret_upsert", 50*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "secrets", "secret_upsert", 60*time.Millisecond, StatusSuccess)

	bm.RecordResultSize(ctx, "secrets", "secret_list", 3)

	output := scrape(t, provider)

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="secrets".*operation="secret_upsert".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="secrets".*operation="secret_get".*status="not_found"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="secrets".*operation="secret_list".*status="crypto_error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="secrets".*operation="secret_upsert".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_result_size_sum`,
		`domain="secrets".*operation="secret_list"`,
		`3`,
	)
}
