package telegram_test

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/transport/telegram"
)

func TestClassifyMembership(t *testing.T) {
	t.Parallel()
	update := &models.Update{
		ID: 1,
		MyChatMember: &models.ChatMemberUpdated{
			Chat:          models.Chat{ID: 42, Type: "channel", Title: "News"},
			NewChatMember: models.ChatMember{Type: "administrator"},
		},
	}

	event, ok := telegram.Classify(update)
	require.True(t, ok)
	membership, ok := event.(domain.MembershipChanged)
	require.True(t, ok)
	assert.Equal(t, int64(42), membership.Chat.ID)
	assert.Equal(t, "News", membership.Chat.Title)
	assert.Equal(t, channelDomain.ChatTypeChannel, membership.Chat.Type)
	assert.Equal(t, channelDomain.MembershipStatusAdministrator, membership.Status)
}

func TestClassifyCallback(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		query  *models.CallbackQuery
		origin *domain.MessageRef
	}{
		{
			name: "accessible message",
			query: &models.CallbackQuery{
				ID:      "cb1",
				From:    models.User{ID: 7},
				Data:    "toggle_global",
				Message: models.MaybeInaccessibleMessage{Message: &models.Message{ID: 17, Chat: models.Chat{ID: 7}}},
			},
			origin: &domain.MessageRef{ChatID: 7, MessageID: 17},
		},
		{
			name: "inaccessible message",
			query: &models.CallbackQuery{
				ID:   "cb2",
				From: models.User{ID: 7},
				Data: "toggle_global",
				Message: models.MaybeInaccessibleMessage{
					InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 7}, MessageID: 3},
				},
			},
			origin: &domain.MessageRef{ChatID: 7, MessageID: 3},
		},
		{
			name:  "no message",
			query: &models.CallbackQuery{ID: "cb3", From: models.User{ID: 7}, Data: "toggle_ch:-100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event, ok := telegram.Classify(&models.Update{CallbackQuery: tt.query})
			require.True(t, ok)
			action, ok := event.(domain.InteractiveAction)
			require.True(t, ok)
			assert.Equal(t, int64(7), action.Actor.ID)
			assert.Equal(t, tt.query.ID, action.CallbackID)
			assert.Equal(t, tt.query.Data, action.ActionTag)
			assert.Equal(t, tt.origin, action.Origin)
		})
	}
}

func TestClassifyPosts(t *testing.T) {
	t.Parallel()

	event, ok := telegram.Classify(&models.Update{ChannelPost: &models.Message{
		ID:           5,
		Chat:         models.Chat{ID: -1001, Type: "channel", Title: "News"},
		MediaGroupID: "album",
	}})
	require.True(t, ok)
	post := event.(domain.ContentPosted)
	assert.Equal(t, "album", post.GroupID)
	assert.Nil(t, post.Sender)
	assert.True(t, post.Chat.Type.Monitorable())

	event, ok = telegram.Classify(&models.Update{Message: &models.Message{
		ID:   6,
		Chat: models.Chat{ID: 42, Type: "private"},
		From: &models.User{ID: 42, Username: "admin"},
	}})
	require.True(t, ok)
	post = event.(domain.ContentPosted)
	require.NotNil(t, post.Sender)
	assert.Equal(t, int64(42), post.Sender.ID)
	assert.False(t, post.Chat.Type.Monitorable())
}

func TestClassifyIgnoresUnknown(t *testing.T) {
	t.Parallel()

	_, ok := telegram.Classify(&models.Update{ID: 9})
	assert.False(t, ok)

	_, ok = telegram.Classify(nil)
	assert.False(t, ok)
}

type recordingHandler struct {
	events  []domain.Event
	explode bool
}

func (r *recordingHandler) Handle(_ context.Context, e domain.Event) error {
	if r.explode {
		panic("boom")
	}
	r.events = append(r.events, e)
	return nil
}

func TestDispatch(t *testing.T) {
	t.Parallel()
	events := &recordingHandler{}
	h := telegram.New(events, nil)

	h.Dispatch(context.Background(), &models.Update{ChannelPost: &models.Message{Chat: models.Chat{ID: -1001, Type: "channel"}}})
	h.Dispatch(context.Background(), &models.Update{ID: 2})
	h.Dispatch(context.Background(), nil)

	assert.Len(t, events.events, 1)
}

func TestDispatchRecoversPanics(t *testing.T) {
	t.Parallel()
	h := telegram.New(&recordingHandler{explode: true}, nil)

	assert.NotPanics(t, func() {
		h.Dispatch(context.Background(), &models.Update{ChannelPost: &models.Message{Chat: models.Chat{ID: -1001, Type: "channel"}}})
	})
}

func TestKeyboard(t *testing.T) {
	t.Parallel()
	panel := domain.Panel{Rows: [][]domain.Button{
		{{Label: "⏸ Pause all", Action: domain.ActionToggleGlobal}},
		{{Label: "🔔 News", Action: domain.ChannelAction(-1001)}},
	}}

	kb := telegram.Keyboard(panel)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "toggle_global", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "🔔 News", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "toggle_ch:-1001", kb.InlineKeyboard[1][0].CallbackData)
}
