package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/storage"
)

// BlobStorage implements Repository on top of a key/blob store, keeping the
// state under a single version-tagged key.
type BlobStorage struct {
	store  storage.BlobStore
	key    string
	logger *slog.Logger
}

// NewBlobStorage creates a state repository stored under key
func NewBlobStorage(store storage.BlobStore, key string, logger *slog.Logger) *BlobStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlobStorage{
		store:  store,
		key:    key,
		logger: logger.With("component", "state_repository"),
	}
}

// Load never fails: a missing, unreadable or malformed blob yields fresh defaults.
func (r *BlobStorage) Load(ctx context.Context) *domain.State {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !stderrors.Is(err, errors.ErrBlobNotFound) {
			r.logger.WarnContext(ctx, "Failed to read state, starting fresh", "key", r.key, "error", err)
		}
		return domain.NewState()
	}

	state := domain.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		r.logger.WarnContext(ctx, "Malformed state, starting fresh", "key", r.key, "error", err)
		return domain.NewState()
	}

	if state.Channels == nil {
		state.Channels = make(map[int64]*domain.Channel)
	}
	for id, ch := range state.Channels {
		if ch == nil {
			delete(state.Channels, id)
		}
	}

	return state
}

func (r *BlobStorage) Save(ctx context.Context, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return oops.With("key", r.key, "context", "failed to marshal state").Wrap(err)
	}

	if err := r.store.Put(ctx, r.key, data); err != nil {
		return oops.With("key", r.key).Wrap(stderrors.Join(errors.ErrCollaborator, err))
	}
	return nil
}
