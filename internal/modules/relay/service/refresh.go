package service

import (
	"context"

	"github.com/samber/oops"
)

// RefreshTitles re-reads every monitored channel's title from Telegram.
// Titles are fetched first; state is then loaded, patched and saved with
// no network calls in between, and only channels still present are touched.
func (s *Service) RefreshTitles(ctx context.Context) error {
	titles := make(map[int64]string)
	for _, id := range s.repo.Load(ctx).IDs() {
		title, err := s.messenger.ChatTitle(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to fetch channel title", "chat_id", id, "error", err)
			continue
		}
		if title != "" {
			titles[id] = title
		}
	}

	state := s.repo.Load(ctx)
	updated := 0
	for id, title := range titles {
		ch, ok := state.Get(id)
		if !ok || ch.Title == title {
			continue
		}
		ch.Title = title
		updated++
	}

	if err := s.repo.Save(ctx, state); err != nil {
		return oops.With("context", "saving refreshed titles").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Channel titles refreshed", "channels", len(state.Channels), "updated", updated)
	return nil
}
