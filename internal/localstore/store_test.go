package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, string) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestOpen_UnusablePath(t *testing.T) {
	// A directory is not a valid database file; Open must fail without
	// leaving a handle behind.
	store, err := Open(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, store)
}

func TestStore_SetAndGet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyToken, "abc123"))

	value, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestStore_Set_ReplacesExistingValue(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyToken, "first"))
	require.NoError(t, store.Set(ctx, KeyToken, "second"))

	value, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestStore_Get_MissingKey(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyUser, `{"userId":"u1"}`))
	require.NoError(t, store.Delete(ctx, KeyUser))

	_, err := store.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, KeyUser))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyToken, "survives"))
	require.NoError(t, store.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "survives", value)
}
