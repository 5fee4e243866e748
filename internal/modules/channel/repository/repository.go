package repository

import (
	"context"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
)

// Repository loads and saves the whole relay state as one document.
// There is no locking across callers: concurrent Save calls are
// last-write-wins.
type Repository interface {
	Load(ctx context.Context) *domain.State
	Save(ctx context.Context, state *domain.State) error
}
