package service

import (
	"context"
	"fmt"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
)

// route decides whether a post becomes a notification in the target channel.
func (s *Service) route(ctx context.Context, state *channelDomain.State, e domain.ContentPosted) {
	if e.Chat.Type == channelDomain.ChatTypePrivate && e.Sender != nil && s.cfg.IsAdmin(e.Sender.ID) {
		s.openPanel(ctx, state, e.Chat.ID)
		return
	}

	if !e.Chat.Type.Monitorable() {
		return
	}
	if e.Chat.ID == s.cfg.TargetChannelID {
		return
	}

	// Posts can arrive before the membership update that introduces the channel
	ch, created := state.Ensure(e.Chat.ID, e.Chat.DisplayName())
	if created {
		s.logger.InfoContext(ctx, "Channel registered from post", "chat_id", e.Chat.ID)
	}

	// Dedup bookkeeping tracks what was seen, not what was delivered,
	// so it runs before the pause checks.
	suppressed := ch.Admit(e.GroupID, s.now(), s.cfg.DedupWindow)

	if state.GlobalMuted || ch.Muted {
		s.logger.DebugContext(ctx, "Relay muted, dropping post", "chat_id", e.Chat.ID, "global", state.GlobalMuted)
		return
	}
	if suppressed {
		s.logger.DebugContext(ctx, "Duplicate grouped post", "chat_id", e.Chat.ID, "group_id", e.GroupID)
		return
	}

	name := ch.Name(e.Chat.ID)
	text := fmt.Sprintf("%s %s", name, s.cfg.UpdateMarker)
	if err := s.messenger.SendText(ctx, s.cfg.TargetChannelID, text); err != nil {
		s.logger.ErrorContext(ctx, "Failed to relay notification", "chat_id", e.Chat.ID, "error", err)
		return
	}

	if s.activity != nil {
		if err := s.activity.Record(ctx, e.Chat.ID, name, text); err != nil {
			s.logger.WarnContext(ctx, "Failed to record activity", "chat_id", e.Chat.ID, "error", err)
		}
	}
}
