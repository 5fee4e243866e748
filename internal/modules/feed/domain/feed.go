package domain

import "time"

// Entry is one delivered relay notification
type Entry struct {
	ID        string    `json:"id"`
	ChannelID int64     `json:"channelId"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
}

// FeedConfig describes the rendered activity feed
type FeedConfig struct {
	Title       string
	Link        string
	Description string
}
