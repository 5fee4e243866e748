package repository

import (
	"context"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/domain"
)

// Repository defines the interface for activity log storage
type Repository interface {
	// Append stores entry as the newest and keeps at most limit entries
	Append(ctx context.Context, entry domain.Entry, limit int) error
	// List returns entries newest first
	List(ctx context.Context) ([]domain.Entry, error)
}
