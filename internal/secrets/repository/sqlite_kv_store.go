package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/secretstash/internal/database"
	apperrors "github.com/allisson/secretstash/internal/errors"
)

// SQLiteKVStore implements the key-value store on a SQLite kv_entries table.
// SQLite has no row locks; transactions are serialized by the single connection.
type SQLiteKVStore struct {
	db *sql.DB
}

// Get retrieves the value for key.
func (s *SQLiteKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_value FROM kv_entries WHERE entry_key = ?`

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
func (s *SQLiteKVStore) Put(ctx context.Context, key string, value []byte) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
			  ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value`

	if _, err := querier.ExecContext(ctx, query, key, value); err != nil {
		return apperrors.Wrap(err, "failed to put kv entry")
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *SQLiteKVStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM kv_entries WHERE entry_key = ?`

	if _, err := querier.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to delete kv entry")
	}
	return nil
}

// List returns every key starting with prefix. SQLite's LIKE ignores ASCII case,
// so the match compares the leading substring instead.
func (s *SQLiteKVStore) List(ctx context.Context, prefix string) ([]string, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_key FROM kv_entries
			  WHERE substr(entry_key, 1, length(?)) = ?
			  ORDER BY entry_key`

	return queryKeys(ctx, querier, query, prefix, prefix)
}

// NewSQLiteKVStore creates a new SQLite key-value store.
func NewSQLiteKVStore(db *sql.DB) *SQLiteKVStore {
	return &SQLiteKVStore{db: db}
}
