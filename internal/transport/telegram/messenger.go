package telegram

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"go.uber.org/ratelimit"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

// Messenger performs outbound Bot API calls for the relay and kick services.
// Every call waits for the shared rate limiter and runs under its own timeout.
type Messenger struct {
	bot     *bot.Bot
	limiter ratelimit.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// NewMessenger creates a messenger; the bot is attached later with SetBot
func NewMessenger(cfg *config.Config, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{
		limiter: ratelimit.New(cfg.APIRateLimit),
		timeout: cfg.RequestTimeout,
		logger:  logger.With("component", "messenger"),
	}
}

// SetBot sets the bot instance
func (m *Messenger) SetBot(b *bot.Bot) {
	m.bot = b
}

func (m *Messenger) call(ctx context.Context, method string, fn func(ctx context.Context, b *bot.Bot) error) error {
	if m.bot == nil {
		return oops.With("method", method).Wrap(errors.ErrCollaborator)
	}

	m.limiter.Take()
	if err := ctx.Err(); err != nil {
		return oops.With("method", method).Wrap(err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := fn(ctx, m.bot); err != nil {
		return oops.With("method", method).Wrap(err)
	}
	return nil
}

func (m *Messenger) SendText(ctx context.Context, chatID int64, text string) error {
	return m.call(ctx, "sendMessage", func(ctx context.Context, b *bot.Bot) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		return err
	})
}

func (m *Messenger) SendPanel(ctx context.Context, chatID int64, panel domain.Panel) error {
	return m.call(ctx, "sendMessage", func(ctx context.Context, b *bot.Bot) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        panel.Text,
			ReplyMarkup: Keyboard(panel),
		})
		return err
	})
}

func (m *Messenger) RefreshPanel(ctx context.Context, ref domain.MessageRef, panel domain.Panel) error {
	return m.call(ctx, "editMessageReplyMarkup", func(ctx context.Context, b *bot.Bot) error {
		_, err := b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
			ChatID:      ref.ChatID,
			MessageID:   ref.MessageID,
			ReplyMarkup: Keyboard(panel),
		})
		return err
	})
}

func (m *Messenger) AnswerAction(ctx context.Context, callbackID, text string) error {
	return m.call(ctx, "answerCallbackQuery", func(ctx context.Context, b *bot.Bot) error {
		_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		})
		return err
	})
}

func (m *Messenger) ChatTitle(ctx context.Context, chatID int64) (string, error) {
	var title string
	err := m.call(ctx, "getChat", func(ctx context.Context, b *bot.Bot) error {
		chat, err := b.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
		if err != nil {
			return err
		}
		title = chat.Title
		return nil
	})
	return title, err
}

// KickMember removes userID from chatID without leaving a permanent ban.
// Once the ban has gone out the unban is always sent, even if ctx is
// cancelled meanwhile.
func (m *Messenger) KickMember(ctx context.Context, chatID, userID int64) error {
	banErr := m.call(ctx, "banChatMember", func(ctx context.Context, b *bot.Bot) error {
		_, err := b.BanChatMember(ctx, &bot.BanChatMemberParams{ChatID: chatID, UserID: userID})
		return err
	})
	if banErr != nil && ctx.Err() == nil {
		return banErr
	}

	unbanErr := m.call(context.WithoutCancel(ctx), "unbanChatMember", func(ctx context.Context, b *bot.Bot) error {
		_, err := b.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{ChatID: chatID, UserID: userID, OnlyIfBanned: true})
		return err
	})
	return stderrors.Join(banErr, unbanErr)
}

// Keyboard converts a panel's button rows into an inline keyboard
func Keyboard(panel domain.Panel) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: lo.Map(panel.Rows, func(row []domain.Button, _ int) []models.InlineKeyboardButton {
			return lo.Map(row, func(btn domain.Button, _ int) models.InlineKeyboardButton {
				return models.InlineKeyboardButton{Text: btn.Label, CallbackData: btn.Action}
			})
		}),
	}
}
