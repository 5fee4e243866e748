package service

import (
	"context"
	"log/slog"
	"time"

	channelRepo "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/repository"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

// DeniedMessage answers interactive actions from non-administrators.
const DeniedMessage = "⛔ You are not allowed to use this panel"

// Messenger is the outbound side of the relay. Each call is a single
// bounded request; retries belong to the implementation, not the relay.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPanel(ctx context.Context, chatID int64, panel domain.Panel) error
	RefreshPanel(ctx context.Context, ref domain.MessageRef, panel domain.Panel) error
	AnswerAction(ctx context.Context, callbackID, text string) error
	ChatTitle(ctx context.Context, chatID int64) (string, error)
}

// ActivityRecorder receives every delivered relay notification.
type ActivityRecorder interface {
	Record(ctx context.Context, chatID int64, title, text string) error
}

// Service handles relay business logic
type Service struct {
	cfg       *config.Config
	repo      channelRepo.Repository
	messenger Messenger
	activity  ActivityRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new relay service
func New(cfg *config.Config, repo channelRepo.Repository, messenger Messenger, activity ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		repo:      repo,
		messenger: messenger,
		activity:  activity,
		logger:    logger.With("component", "relay"),
		now:       time.Now,
	}
}

// SetClock replaces the wall clock used by the dedup gate
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Handle processes one inbound event. State is loaded fresh, mutated in
// memory and written back exactly once, whether or not anything changed.
// Unauthorized actions are answered and rejected before state is touched.
func (s *Service) Handle(ctx context.Context, event domain.Event) error {
	if action, ok := event.(domain.InteractiveAction); ok && !s.cfg.IsAdmin(action.Actor.ID) {
		s.logger.WarnContext(ctx, "Unauthorized panel action", "user_id", action.Actor.ID, "action", action.ActionTag)
		if err := s.messenger.AnswerAction(ctx, action.CallbackID, DeniedMessage); err != nil {
			s.logger.WarnContext(ctx, "Failed to answer unauthorized action", "user_id", action.Actor.ID, "error", err)
		}
		return errors.ErrUnauthorized
	}

	state := s.repo.Load(ctx)

	switch e := event.(type) {
	case domain.MembershipChanged:
		s.applyMembership(ctx, state, e)
	case domain.ContentPosted:
		s.route(ctx, state, e)
	case domain.InteractiveAction:
		s.applyAction(ctx, state, e)
	}

	if err := s.repo.Save(ctx, state); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist state", "error", err)
	}
	return nil
}
