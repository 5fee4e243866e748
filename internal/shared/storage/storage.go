// Package storage provides the key/blob stores that back persisted state.
// The relay only needs "read blob by key" and "write blob by key"; each
// backend keeps whole JSON documents and never interprets them.
package storage

import (
	"context"

	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
)

// BlobStore reads and writes opaque blobs by key. Get returns
// errors.ErrBlobNotFound when nothing is stored under the key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open builds the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverFile:
		return NewFileStorage(cfg.StoragePath)
	case config.StorageDriverSqlite:
		return NewSQLiteStorage(cfg.SQLitePath)
	case config.StorageDriverMongo:
		return NewMongoStorage(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, oops.With("storage_driver", cfg.StorageDriver).Errorf("unsupported storage driver")
	}
}
