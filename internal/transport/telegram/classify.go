package telegram

import (
	"github.com/go-telegram/bot/models"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
)

// Classify maps a raw update onto exactly one relay event. Updates that
// match no known kind report false and are ignored.
func Classify(update *models.Update) (domain.Event, bool) {
	if update == nil {
		return nil, false
	}

	switch {
	case update.MyChatMember != nil:
		return classifyMembership(update.MyChatMember)
	case update.CallbackQuery != nil:
		return classifyCallback(update.CallbackQuery), true
	case update.ChannelPost != nil:
		return classifyPost(update.ChannelPost), true
	case update.Message != nil:
		return classifyPost(update.Message), true
	}
	return nil, false
}

func classifyMembership(m *models.ChatMemberUpdated) (domain.Event, bool) {
	status, err := channelDomain.ParseMembershipStatus(string(m.NewChatMember.Type))
	if err != nil {
		return nil, false
	}
	return domain.MembershipChanged{Chat: toChat(m.Chat), Status: status}, true
}

func classifyCallback(q *models.CallbackQuery) domain.Event {
	action := domain.InteractiveAction{
		Actor:      domain.User{ID: q.From.ID, Username: q.From.Username},
		CallbackID: q.ID,
		ActionTag:  q.Data,
	}

	switch {
	case q.Message.Message != nil:
		action.Origin = &domain.MessageRef{ChatID: q.Message.Message.Chat.ID, MessageID: q.Message.Message.ID}
	case q.Message.InaccessibleMessage != nil:
		action.Origin = &domain.MessageRef{ChatID: q.Message.InaccessibleMessage.Chat.ID, MessageID: q.Message.InaccessibleMessage.MessageID}
	}
	return action
}

func classifyPost(msg *models.Message) domain.Event {
	post := domain.ContentPosted{
		Chat:    toChat(msg.Chat),
		GroupID: msg.MediaGroupID,
	}
	if msg.From != nil {
		post.Sender = &domain.User{ID: msg.From.ID, Username: msg.From.Username}
	}
	return post
}

func toChat(c models.Chat) domain.Chat {
	chatType, err := channelDomain.ParseChatType(string(c.Type))
	if err != nil {
		// Unknown chat kinds are never monitorable
		chatType = channelDomain.ChatTypePrivate
	}
	return domain.Chat{
		ID:       c.ID,
		Type:     chatType,
		Title:    c.Title,
		Username: c.Username,
	}
}

// kindOf names an event for logs.
func kindOf(e domain.Event) string {
	switch e.(type) {
	case domain.MembershipChanged:
		return "membership_changed"
	case domain.InteractiveAction:
		return "interactive_action"
	case domain.ContentPosted:
		return "content_posted"
	}
	return "unknown"
}

// chatOf returns the chat id an event concerns, for logs.
func chatOf(e domain.Event) int64 {
	switch e := e.(type) {
	case domain.MembershipChanged:
		return e.Chat.ID
	case domain.InteractiveAction:
		if e.Origin != nil {
			return e.Origin.ChatID
		}
	case domain.ContentPosted:
		return e.Chat.ID
	}
	return 0
}
