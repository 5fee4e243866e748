package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/repository"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/storage"
)

func newRepo(t *testing.T) (*repository.BlobStorage, *storage.FileStorage) {
	t.Helper()
	store, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return repository.NewBlobStorage(store, "relay-state-v1", nil), store
}

func TestLoadMissingGivesDefaults(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	state := repo.Load(context.Background())

	assert.False(t, state.GlobalMuted)
	assert.NotNil(t, state.Channels)
	assert.Empty(t, state.Channels)
}

func TestLoadMalformedGivesDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, store := newRepo(t)

	for _, raw := range []string{`not json`, `{"globalMuted":"yes"}`, `[]`} {
		require.NoError(t, store.Put(ctx, "relay-state-v1", []byte(raw)))
		state := repo.Load(ctx)
		assert.False(t, state.GlobalMuted, raw)
		assert.Empty(t, state.Channels, raw)
	}
}

func TestLoadDropsNullRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, store := newRepo(t)
	require.NoError(t, store.Put(ctx, "relay-state-v1", []byte(`{"globalMuted":false,"channels":{"5":null,"6":{"title":"x"}}}`)))

	state := repo.Load(ctx)
	assert.Equal(t, []int64{6}, state.IDs())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newRepo(t)

	state := repo.Load(ctx)
	state.GlobalMuted = true
	ch, _ := state.Ensure(-1001, "News")
	ch.Muted = true
	ch.LastGroupID = "album"
	ch.LastGroupTimestamp = 1234
	require.NoError(t, repo.Save(ctx, state))

	loaded := repo.Load(ctx)
	assert.True(t, loaded.GlobalMuted)
	got, ok := loaded.Get(-1001)
	require.True(t, ok)
	assert.Equal(t, *ch, *got)
}

type failingStore struct{ storage.BlobStore }

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, assert.AnError }
func (failingStore) Put(context.Context, string, []byte) error   { return assert.AnError }

func TestCollaboratorFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewBlobStorage(failingStore{}, "relay-state-v1", nil)

	state := repo.Load(ctx)
	assert.Empty(t, state.Channels)

	err := repo.Save(ctx, state)
	assert.ErrorIs(t, err, errors.ErrCollaborator)
	assert.ErrorIs(t, err, assert.AnError)
}
