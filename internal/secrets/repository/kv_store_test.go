package repository

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/secretstash/internal/database"
	apperrors "github.com/allisson/secretstash/internal/errors"
	"github.com/allisson/secretstash/internal/testutil"
)

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// runKVStoreSuite exercises the behavior every backend must share.
func runKVStoreSuite(t *testing.T, store kvStore, txManager database.TxManager) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		value, err := store.Get(ctx, "secrets:nobody:missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, value)
	})

	t.Run("put get overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "secrets:u1:a", []byte("one")))

		value, err := store.Get(ctx, "secrets:u1:a")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), value)

		require.NoError(t, store.Put(ctx, "secrets:u1:a", []byte("two")))

		value, err = store.Get(ctx, "secrets:u1:a")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), value)
	})

	t.Run("binary values", func(t *testing.T) {
		binary := []byte{0x00, 0xFF, 0x10, 0x00}
		require.NoError(t, store.Put(ctx, "secrets:u1:bin", binary))

		value, err := store.Get(ctx, "secrets:u1:bin")
		require.NoError(t, err)
		assert.Equal(t, binary, value)
	})

	t.Run("list by prefix", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "secrets:u1:b", []byte("x")))
		require.NoError(t, store.Put(ctx, "secrets:u10:c", []byte("x")))
		require.NoError(t, store.Put(ctx, "secrets:U1:d", []byte("x")))
		require.NoError(t, store.Put(ctx, "secrets:u_:e", []byte("x")))
		require.NoError(t, store.Put(ctx, "secrets:u%:f", []byte("x")))

		keys, err := store.List(ctx, "secrets:u1:")
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{"secrets:u1:a", "secrets:u1:b", "secrets:u1:bin"}, keys)

		keys, err = store.List(ctx, "secrets:u_:")
		require.NoError(t, err)
		assert.Equal(t, []string{"secrets:u_:e"}, keys)

		keys, err = store.List(ctx, "secrets:u%:")
		require.NoError(t, err)
		assert.Equal(t, []string{"secrets:u%:f"}, keys)

		keys, err = store.List(ctx, "secrets:none:")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "secrets:u1:a"))
		_, err := store.Get(ctx, "secrets:u1:a")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "secrets:u1:a"))
	})

	t.Run("read modify write in transaction", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "secrets:u2:counter", []byte{0}))

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				err := txManager.WithTx(ctx, func(txCtx context.Context) error {
					value, err := store.Get(txCtx, "secrets:u2:counter")
					if err != nil {
						return err
					}
					return store.Put(txCtx, "secrets:u2:counter", []byte{value[0] + 1})
				})
				assert.NoError(t, err)
			})
		}
		wg.Wait()

		value, err := store.Get(ctx, "secrets:u2:counter")
		require.NoError(t, err)
		assert.Equal(t, []byte{10}, value)
	})
}

func TestMemoryKVStore(t *testing.T) {
	runKVStoreSuite(t, NewMemoryKVStore(), database.NewLocalTxManager())
}

func TestMemoryKVStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore()

	original := []byte("value")
	require.NoError(t, store.Put(ctx, "k", original))
	original[0] = 'X'

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	value[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

func TestMemoryKVStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryKVStore()
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "k", nil), context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "k"), context.Canceled)
	_, err = store.List(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteKVStore(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	runKVStoreSuite(t, NewSQLiteKVStore(db), database.NewTxManager(db))
}

func TestPostgreSQLKVStore_Integration(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	runKVStoreSuite(t, NewPostgreSQLKVStore(db), database.NewTxManager(db))
}

func TestMySQLKVStore_Integration(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	runKVStoreSuite(t, NewMySQLKVStore(db), database.NewTxManager(db))
}

func TestLikePrefix(t *testing.T) {
	assert.Equal(t, `secrets:u1:%`, likePrefix("secrets:u1:"))
	assert.Equal(t, `secrets:a\_b\%c\\:%`, likePrefix(`secrets:a_b%c\:`))
}
