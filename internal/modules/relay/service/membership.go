package service

import (
	"context"
	"fmt"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
)

// applyMembership moves a chat between unmonitored and monitored.
// Administrators hear about real transitions only.
func (s *Service) applyMembership(ctx context.Context, state *channelDomain.State, e domain.MembershipChanged) {
	if e.Chat.ID == s.cfg.TargetChannelID {
		s.logger.DebugContext(ctx, "Ignoring membership change in target channel", "status", e.Status)
		return
	}

	switch {
	case e.Status.Elevated():
		if _, created := state.Ensure(e.Chat.ID, e.Chat.DisplayName()); created {
			s.logger.InfoContext(ctx, "Channel added", "chat_id", e.Chat.ID, "status", e.Status)
			s.notifyAdmins(ctx, fmt.Sprintf("✅ Bot added to %s (%d)", e.Chat.DisplayName(), e.Chat.ID))
		}
	case e.Status.Departed():
		if state.Remove(e.Chat.ID) {
			s.logger.InfoContext(ctx, "Channel removed", "chat_id", e.Chat.ID, "status", e.Status)
			s.notifyAdmins(ctx, fmt.Sprintf("❌ Bot removed from %s (%d)", e.Chat.DisplayName(), e.Chat.ID))
		}
	default:
		s.logger.DebugContext(ctx, "Ignoring membership status", "chat_id", e.Chat.ID, "status", e.Status)
	}
}
