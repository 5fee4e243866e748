package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
	"github.com/reshetovitsme/tg-channel-relay/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// SQLiteStorage keeps blobs in a single kv table.
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage opens the database at path and applies migrations.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, oops.With("path", path, "context", "failed to connect to database").Wrap(err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := applyMigrations(db.DB); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database after migration failure", "error", closeErr)
		}
		return nil, oops.With("path", path).Wrap(err)
	}

	return &SQLiteStorage{db: db}, nil
}

func applyMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return oops.With("context", "failed to create embed source driver").Wrap(err)
	}

	dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return oops.With("context", "failed to create sqlite migration driver").Wrap(err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return oops.With("context", "failed to create migrate instance").Wrap(err)
	}

	if err := migrator.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return oops.With("context", "failed to apply migrations").Wrap(err)
	}
	return nil
}

func (s *SQLiteStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrBlobNotFound
		}
		return nil, oops.With("key", key, "context", "failed to read blob").Wrap(err)
	}
	return value, nil
}

func (s *SQLiteStorage) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return oops.With("key", key, "context", "failed to write blob").Wrap(err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
