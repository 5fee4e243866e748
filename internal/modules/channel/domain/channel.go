package domain

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Channel represents a monitored chat the relay observes for new posts.
type Channel struct {
	Title              string `json:"title"`
	Muted              bool   `json:"muted"`
	LastGroupID        string `json:"lastGroupId,omitempty"`
	LastGroupTimestamp int64  `json:"lastGroupTimestamp"`
}

// State is the single persisted object: the registry of monitored channels
// plus the global mute flag.
type State struct {
	GlobalMuted bool               `json:"globalMuted"`
	Channels    map[int64]*Channel `json:"channels"`
}

// NewState returns fresh defaults.
func NewState() *State {
	return &State{Channels: make(map[int64]*Channel)}
}

// Ensure returns the record for chatID, creating it when absent. An existing
// record only has its title refreshed; mute and dedup fields are kept.
// The second return value reports whether the record was created.
func (s *State) Ensure(chatID int64, observedTitle string) (*Channel, bool) {
	if s.Channels == nil {
		s.Channels = make(map[int64]*Channel)
	}

	if ch, ok := s.Channels[chatID]; ok {
		if observedTitle != "" && observedTitle != ch.Title {
			ch.Title = observedTitle
		}
		return ch, false
	}

	ch := &Channel{Title: observedTitle}
	s.Channels[chatID] = ch
	return ch, true
}

// Remove deletes the record and reports whether it was present.
func (s *State) Remove(chatID int64) bool {
	if _, ok := s.Channels[chatID]; !ok {
		return false
	}
	delete(s.Channels, chatID)
	return true
}

// Get looks up a record.
func (s *State) Get(chatID int64) (*Channel, bool) {
	ch, ok := s.Channels[chatID]
	return ch, ok
}

// IDs returns the monitored channel ids in ascending order.
func (s *State) IDs() []int64 {
	ids := lo.Keys(s.Channels)
	slices.Sort(ids)
	return ids
}

// DisplayName picks the first non-empty of title, @username and the numeric id.
func DisplayName(title, username string, chatID int64) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if u := strings.TrimPrefix(strings.TrimSpace(username), "@"); u != "" {
		return "@" + u
	}
	return strconv.FormatInt(chatID, 10)
}

// Name is the display name of a stored record.
func (c *Channel) Name(chatID int64) string {
	return DisplayName(c.Title, "", chatID)
}
