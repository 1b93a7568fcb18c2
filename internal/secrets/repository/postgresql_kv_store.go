package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/secretstash/internal/database"
	apperrors "github.com/allisson/secretstash/internal/errors"
)

// PostgreSQLKVStore implements the key-value store on a PostgreSQL kv_entries table.
type PostgreSQLKVStore struct {
	db *sql.DB
}

// Get retrieves the value for key. Inside a transaction the row is locked until
// commit so a read-modify-write on the same key cannot interleave.
func (p *PostgreSQLKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT entry_value FROM kv_entries WHERE entry_key = $1`
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
func (p *PostgreSQLKVStore) Put(ctx context.Context, key string, value []byte) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO kv_entries (entry_key, entry_value) VALUES ($1, $2)
			  ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value`

	if _, err := querier.ExecContext(ctx, query, key, value); err != nil {
		return apperrors.Wrap(err, "failed to put kv entry")
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (p *PostgreSQLKVStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM kv_entries WHERE entry_key = $1`

	if _, err := querier.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to delete kv entry")
	}
	return nil
}

// List returns every key starting with prefix.
func (p *PostgreSQLKVStore) List(ctx context.Context, prefix string) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT entry_key FROM kv_entries WHERE entry_key LIKE $1 ESCAPE '\' ORDER BY entry_key`

	return queryKeys(ctx, querier, query, likePrefix(prefix))
}

// NewPostgreSQLKVStore creates a new PostgreSQL key-value store.
func NewPostgreSQLKVStore(db *sql.DB) *PostgreSQLKVStore {
	return &PostgreSQLKVStore{db: db}
}

// queryKeys runs a single-column key query and collects the results.
func queryKeys(ctx context.Context, querier database.Querier, query string, args ...any) ([]string, error) {
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list kv entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan kv entry key")
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating kv entries")
	}

	return keys, nil
}
