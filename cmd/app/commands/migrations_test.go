package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("memory-driver", func(t *testing.T) {
		require.NoError(t, RunMigrations(logger, "memory", ""))
	})

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, "invalid", "postgres://localhost")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})

	t.Run("invalid-connection-string", func(t *testing.T) {
		err := RunMigrations(logger, "postgres", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}

func TestMigrationTarget(t *testing.T) {
	tests := []struct {
		name         string
		driver       string
		dsn          string
		expectedPath string
		expectedURL  string
	}{
		{
			name:         "postgres",
			driver:       "postgres",
			dsn:          "postgres://u:p@localhost:5432/db?sslmode=disable",
			expectedPath: "file://migrations/postgresql",
			expectedURL:  "postgres://u:p@localhost:5432/db?sslmode=disable",
		},
		{
			name:         "mysql-dsn",
			driver:       "mysql",
			dsn:          "u:p@tcp(localhost:3306)/db",
			expectedPath: "file://migrations/mysql",
			expectedURL:  "mysql://u:p@tcp(localhost:3306)/db",
		},
		{
			name:         "mysql-url",
			driver:       "mysql",
			dsn:          "mysql://u:p@tcp(localhost:3306)/db",
			expectedPath: "file://migrations/mysql",
			expectedURL:  "mysql://u:p@tcp(localhost:3306)/db",
		},
		{
			name:         "sqlite-file-dsn",
			driver:       "sqlite",
			dsn:          "file:secrets.db",
			expectedPath: "file://migrations/sqlite",
			expectedURL:  "sqlite://secrets.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, url, err := migrationTarget(tt.driver, tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPath, path)
			assert.Equal(t, tt.expectedURL, url)
		})
	}

	_, _, err := migrationTarget("redis", "")
	assert.Error(t, err)
}
