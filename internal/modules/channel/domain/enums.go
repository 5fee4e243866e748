//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ChatType is the kind of chat an event originates from.
// ENUM(private,group,supergroup,channel)
type ChatType string

// MembershipStatus is the bot's reported membership in a chat.
// ENUM(creator,administrator,member,restricted,left,kicked)
type MembershipStatus string

// Monitorable reports whether posts from this chat kind are relayed.
func (x ChatType) Monitorable() bool {
	return x == ChatTypeGroup || x == ChatTypeSupergroup || x == ChatTypeChannel
}

// Elevated reports whether the status keeps a channel monitored.
func (x MembershipStatus) Elevated() bool {
	return x == MembershipStatusAdministrator || x == MembershipStatusMember
}

// Departed reports whether the bot lost access to the chat.
func (x MembershipStatus) Departed() bool {
	return x == MembershipStatusLeft || x == MembershipStatusKicked
}
