package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_UnsupportedDriver(t *testing.T) {
	db, err := Connect(context.Background(), Config{Driver: "redis", ConnectionString: "redis://localhost"})
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestConnect_SQLite(t *testing.T) {
	cfg := Config{
		Driver:             DriverSQLite,
		ConnectionString:   filepath.Join(t.TempDir(), "secrets.db"),
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(t.Context(), cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Close())
	}()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	var timeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?"+sqliteDefaultPragmas, sqliteDSN("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&"+sqliteDefaultPragmas, sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", sqliteDSN("a.db?_pragma=foreign_keys(1)"))
}
