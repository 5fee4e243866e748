package telegram

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

// EventHandler consumes classified relay events.
type EventHandler interface {
	Handle(ctx context.Context, event domain.Event) error
}

// Handler turns Telegram updates into relay events
type Handler struct {
	events EventHandler
	logger *slog.Logger
}

// New creates a new Telegram handler
func New(events EventHandler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		events: events,
		logger: logger.With("component", "telegram"),
	}
}

// HandleUpdate is the bot's default handler in polling mode
func (h *Handler) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	h.Dispatch(ctx, update)
}

// Dispatch classifies and processes one update to completion. It never
// panics; a recovered panic is reported to Sentry.
func (h *Handler) Dispatch(ctx context.Context, update *models.Update) {
	if update == nil {
		return
	}

	event, ok := Classify(update)
	if !ok {
		h.logger.DebugContext(ctx, "Ignoring update", "update_id", update.ID)
		return
	}

	start := time.Now()
	log := h.logger.With("update_id", update.ID, "kind", kindOf(event), "chat_id", chatOf(event))

	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			log.ErrorContext(ctx, "Panic while processing update", "panic", fmt.Sprint(r))
		}
	}()

	err := h.events.Handle(ctx, event)
	switch {
	case err == nil:
		log.InfoContext(ctx, "Processed update", "duration", time.Since(start))
	case stderrors.Is(err, errors.ErrUnauthorized):
		log.WarnContext(ctx, "Rejected update", "duration", time.Since(start), "error", err)
	default:
		log.ErrorContext(ctx, "Failed to process update", "duration", time.Since(start), "error", err)
	}
}
