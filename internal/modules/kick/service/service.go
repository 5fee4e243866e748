package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/repository"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/kick/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

// Remover removes a user from one chat.
type Remover interface {
	KickMember(ctx context.Context, chatID, userID int64) error
}

// Service fans a removal out over every monitored channel
type Service struct {
	repo        channelRepo.Repository
	remover     Remover
	concurrency int
	logger      *slog.Logger
}

// New creates a new kick service
func New(repo channelRepo.Repository, remover Remover, concurrency int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:        repo,
		remover:     remover,
		concurrency: concurrency,
		logger:      logger.With("component", "kick"),
	}
}

// Kick removes userID from every channel in the registry. It never writes state.
func (s *Service) Kick(ctx context.Context, userID int64) (*domain.Summary, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", errors.ErrValidation)
	}

	summary := s.KickAll(ctx, s.repo.Load(ctx), userID)
	s.logger.InfoContext(ctx, "Kick completed",
		"user_id", userID,
		"total", summary.Total,
		"success", summary.SuccessCount,
		"failed", summary.FailCount,
	)
	return summary, nil
}

// KickAll issues one removal per channel concurrently and joins before
// aggregating. Titles come from state as enumerated, results are ordered
// by channel id.
func (s *Service) KickAll(ctx context.Context, state *channelDomain.State, userID int64) *domain.Summary {
	ids := state.IDs()
	if len(ids) == 0 {
		return domain.NewSummary(nil)
	}

	results := make([]domain.ChannelResult, len(ids))
	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for i, id := range ids {
		results[i] = domain.ChannelResult{ChannelID: id, Title: state.Channels[id].Title}
		g.Go(func() error {
			if err := s.remover.KickMember(ctx, id, userID); err != nil {
				s.logger.WarnContext(ctx, "Failed to kick member", "chat_id", id, "user_id", userID, "error", err)
				results[i].Error = err.Error()
				return nil
			}
			results[i].Success = true
			return nil
		})
	}
	_ = g.Wait()

	return domain.NewSummary(results)
}
