package telegram

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
)

// AllowedUpdates lists the update kinds the relay consumes
var AllowedUpdates = bot.AllowedUpdates{"message", "channel_post", "callback_query", "my_chat_member"}

// RegisterWebhook points Telegram at webhook_url + webhook_path
func RegisterWebhook(ctx context.Context, b *bot.Bot, cfg *config.Config) error {
	url := strings.TrimRight(cfg.WebhookURL, "/") + cfg.WebhookPath
	if _, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:            url,
		SecretToken:    cfg.WebhookSecret,
		AllowedUpdates: AllowedUpdates,
	}); err != nil {
		return oops.With("webhook_url", url).Wrap(err)
	}
	return nil
}

// DropWebhook removes any webhook so long polling can receive updates
func DropWebhook(ctx context.Context, b *bot.Bot) error {
	if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		return oops.With("context", "deleting webhook").Wrap(err)
	}
	return nil
}
