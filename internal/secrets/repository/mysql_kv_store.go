package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/secretstash/internal/database"
	apperrors "github.com/allisson/secretstash/internal/errors"
)

// MySQLKVStore implements the key-value store on a MySQL kv_entries table.
type MySQLKVStore struct {
	db *sql.DB
}

// Get retrieves the value for key, locking the row when called inside a transaction.
func (m *MySQLKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT entry_value FROM kv_entries WHERE entry_key = ?`
	if database.InTx(ctx) {
		query += ` FOR UPDATE`
	}

	var value []byte
	err := querier.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get kv entry")
	}

	return value, nil
}

// Put inserts or replaces the value for key.
func (m *MySQLKVStore) Put(ctx context.Context, key string, value []byte) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
			  ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`

	if _, err := querier.ExecContext(ctx, query, key, value); err != nil {
		return apperrors.Wrap(err, "failed to put kv entry")
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (m *MySQLKVStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM kv_entries WHERE entry_key = ?`

	if _, err := querier.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to delete kv entry")
	}
	return nil
}

// List returns every key starting with prefix. The column uses a binary collation
// so the match is case sensitive. The escape character is a single backslash
// under the default sql_mode.
func (m *MySQLKVStore) List(ctx context.Context, prefix string) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT entry_key FROM kv_entries WHERE entry_key LIKE ? ESCAPE '\\' ORDER BY entry_key`

	return queryKeys(ctx, querier, query, likePrefix(prefix))
}

// NewMySQLKVStore creates a new MySQL key-value store.
func NewMySQLKVStore(db *sql.DB) *MySQLKVStore {
	return &MySQLKVStore{db: db}
}
