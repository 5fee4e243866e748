package service

import (
	"context"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
)

func (s *Service) openPanel(ctx context.Context, state *channelDomain.State, chatID int64) {
	if err := s.messenger.SendPanel(ctx, chatID, domain.RenderPanel(state)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to send control panel", "chat_id", chatID, "error", err)
	}
}

// applyAction toggles a mute flag and refreshes the buttons of the
// message the press came from, so they always mirror stored state.
func (s *Service) applyAction(ctx context.Context, state *channelDomain.State, e domain.InteractiveAction) {
	msg, err := domain.ApplyToggle(state, e.ActionTag)
	if err != nil {
		s.logger.InfoContext(ctx, "Toggle rejected", "action", e.ActionTag, "error", err)
	} else {
		s.logger.InfoContext(ctx, "Toggle applied", "action", e.ActionTag, "user_id", e.Actor.ID)
	}

	if err := s.messenger.AnswerAction(ctx, e.CallbackID, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to answer action", "error", err)
	}

	if e.Origin == nil {
		s.logger.DebugContext(ctx, "Origin message unavailable, skipping panel refresh")
		return
	}
	if err := s.messenger.RefreshPanel(ctx, *e.Origin, domain.RenderPanel(state)); err != nil {
		s.logger.WarnContext(ctx, "Failed to refresh panel", "chat_id", e.Origin.ChatID, "message_id", e.Origin.MessageID, "error", err)
	}
}
