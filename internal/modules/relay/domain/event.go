// Package domain defines the inbound events the relay reacts to and the
// control panel derived from state.
package domain

import (
	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
)

// Event is one classified inbound update. The set of implementations is closed.
type Event interface {
	isEvent()
}

// Chat is the source chat of an event.
type Chat struct {
	ID       int64
	Type     channelDomain.ChatType
	Title    string
	Username string
}

// DisplayName follows the title, @username, id fallback order.
func (c Chat) DisplayName() string {
	return channelDomain.DisplayName(c.Title, c.Username, c.ID)
}

// User identifies the sender of a post or the actor of an action.
type User struct {
	ID       int64
	Username string
}

// MessageRef points at a message the bot previously sent.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// MembershipChanged reports the bot's new membership status in a chat.
type MembershipChanged struct {
	Chat   Chat
	Status channelDomain.MembershipStatus
}

// InteractiveAction is an inline button press.
type InteractiveAction struct {
	Actor      User
	CallbackID string
	ActionTag  string
	Origin     *MessageRef
}

// ContentPosted is a new post or message in a chat.
type ContentPosted struct {
	Chat    Chat
	Sender  *User
	GroupID string
}

func (MembershipChanged) isEvent() {}
func (InteractiveAction) isEvent() {}
func (ContentPosted) isEvent()     {}
