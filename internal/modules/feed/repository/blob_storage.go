package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/storage"
)

// BlobStorage keeps the activity log as one JSON array under a fixed key
type BlobStorage struct {
	store storage.BlobStore
	key   string
}

// NewBlobStorage creates an activity repository over store
func NewBlobStorage(store storage.BlobStore, key string) *BlobStorage {
	return &BlobStorage{store: store, key: key}
}

func (r *BlobStorage) List(ctx context.Context) ([]domain.Entry, error) {
	data, err := r.store.Get(ctx, r.key)
	if stderrors.Is(err, errors.ErrBlobNotFound) {
		return []domain.Entry{}, nil
	}
	if err != nil {
		return nil, oops.With("key", r.key).Wrap(err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A damaged log is restarted rather than blocking new entries
		return []domain.Entry{}, nil
	}
	return entries, nil
}

func (r *BlobStorage) Append(ctx context.Context, entry domain.Entry, limit int) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}

	entries = append([]domain.Entry{entry}, entries...)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return oops.With("key", r.key).Wrap(err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return oops.With("key", r.key).Wrap(stderrors.Join(errors.ErrCollaborator, err))
	}
	return nil
}
