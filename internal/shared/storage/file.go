package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

// FileStorage keeps one JSON file per key under basePath.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a file-backed blob store
func NewFileStorage(basePath string) (*FileStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create storage directory").Wrap(err)
	}

	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.basePath, keyReplacer.Replace(key)+".json")
}

func (s *FileStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrBlobNotFound
		}
		return nil, oops.With("key", key, "context", "failed to read blob").Wrap(err)
	}

	return data, nil
}

// Put writes through a temp file and rename so readers never see a torn blob.
func (s *FileStorage) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp, err := os.CreateTemp(s.basePath, filepath.Base(path)+".*.tmp")
	if err != nil {
		return oops.With("key", key, "context", "failed to create temp file").Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return oops.With("key", key, "context", "failed to write blob").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return oops.With("key", key, "context", "failed to close blob").Wrap(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return oops.With("key", key, "context", "failed to replace blob").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}
