package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/secretstash/internal/database"
)

// RunMigrations applies all pending migrations for the configured driver from
// migrations/{postgresql,mysql,sqlite}. The memory driver has no schema and is a no-op.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations", slog.String("driver", dbDriver))

	if dbDriver == database.DriverMemory {
		logger.Info("memory driver has no migrations")
		return nil
	}

	migrationsPath, databaseURL, err := migrationTarget(dbDriver, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationTarget returns the migration source path and the migrate database URL.
// MySQL and SQLite connection strings are driver DSNs and need a URL scheme for migrate.
func migrationTarget(dbDriver, dbConnectionString string) (string, string, error) {
	switch dbDriver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", dbConnectionString, nil
	case database.DriverMySQL:
		if !strings.HasPrefix(dbConnectionString, "mysql://") {
			dbConnectionString = "mysql://" + dbConnectionString
		}
		return "file://migrations/mysql", dbConnectionString, nil
	case database.DriverSQLite:
		if !strings.HasPrefix(dbConnectionString, "sqlite://") {
			dbConnectionString = "sqlite://" + strings.TrimPrefix(dbConnectionString, "file:")
		}
		return "file://migrations/sqlite", dbConnectionString, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", dbDriver)
	}
}
