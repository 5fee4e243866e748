package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// notifyAdmins sends text to every administrator in parallel. A failed
// delivery is logged and never cancels the others.
func (s *Service) notifyAdmins(ctx context.Context, text string) {
	var g errgroup.Group
	for _, adminID := range s.cfg.AdminIDs {
		g.Go(func() error {
			if err := s.messenger.SendText(ctx, adminID, text); err != nil {
				s.logger.WarnContext(ctx, "Failed to notify administrator", "admin_id", adminID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
