package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/storage"
)

func exerciseBlobStore(t *testing.T, store storage.BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "relay-state-v1")
	require.ErrorIs(t, err, errors.ErrBlobNotFound)

	require.NoError(t, store.Put(ctx, "relay-state-v1", []byte(`{"a":1}`)))
	got, err := store.Get(ctx, "relay-state-v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, store.Put(ctx, "relay-state-v1", []byte(`{"a":2}`)))
	got, err = store.Get(ctx, "relay-state-v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	_, err = store.Get(ctx, "activity-v1")
	assert.ErrorIs(t, err, errors.ErrBlobNotFound, "keys are independent")
}

func TestFileStorage(t *testing.T) {
	t.Parallel()

	store, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseBlobStore(t, store)
}

func TestFileStorageKeysStayInsideBase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := storage.NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "../escape", []byte(`{}`)))
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSQLiteStorage(t *testing.T) {
	t.Parallel()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "relay.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseBlobStore(t, store)
}

func TestSQLiteStorageReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "relay.db")
	first, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err, "migrations are idempotent")
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := storage.Open(context.Background(), &config.Config{StorageDriver: "etcd"})
	assert.Error(t, err)
}
