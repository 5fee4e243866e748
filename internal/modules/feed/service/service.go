package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/repository"
)

// Service records relay activity and renders it as RSS or Atom
type Service struct {
	repo   repository.Repository
	limit  int
	config domain.FeedConfig
	logger *slog.Logger
	now    func() time.Time

	// serializes read-modify-write of the log within this process
	mu sync.Mutex
}

// New creates a new feed service
func New(repo repository.Repository, limit int, config domain.FeedConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		limit:  limit,
		config: config,
		logger: logger.With("component", "feed"),
		now:    time.Now,
	}
}

// Record appends a delivered notification to the activity log
func (s *Service) Record(ctx context.Context, chatID int64, title, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.Entry{
		ID:        uuid.NewString(),
		ChannelID: chatID,
		Title:     title,
		Text:      text,
		At:        s.now().UTC(),
	}
	if err := s.repo.Append(ctx, entry, s.limit); err != nil {
		return oops.With("chat_id", chatID, "context", "failed to record activity").Wrap(err)
	}
	return nil
}

// GenerateFeed builds a feed from the activity log, newest first
func (s *Service) GenerateFeed(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, oops.With("context", "failed to list activity").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       s.config.Title,
		Link:        &feeds.Link{Href: lo.CoalesceOrEmpty(s.config.Link, baseURL)},
		Description: s.config.Description,
		Created:     s.now(),
	}
	if len(entries) > 0 {
		feed.Updated = entries[0].At
	}

	feed.Items = lo.Map(entries, func(e domain.Entry, _ int) *feeds.Item {
		return entryToFeedItem(e)
	})
	return feed, nil
}

// RSS renders the activity feed as RSS 2.0
func (s *Service) RSS(ctx context.Context, baseURL string) (string, error) {
	feed, err := s.GenerateFeed(ctx, baseURL)
	if err != nil {
		return "", err
	}
	return feed.ToRss()
}

// Atom renders the activity feed as Atom
func (s *Service) Atom(ctx context.Context, baseURL string) (string, error) {
	feed, err := s.GenerateFeed(ctx, baseURL)
	if err != nil {
		return "", err
	}
	return feed.ToAtom()
}

func entryToFeedItem(e domain.Entry) *feeds.Item {
	return &feeds.Item{
		Title:       e.Text,
		Link:        &feeds.Link{Href: channelLink(e.ChannelID)},
		Description: fmt.Sprintf("%s (%d)", e.Title, e.ChannelID),
		Author:      &feeds.Author{Name: e.Title},
		Created:     e.At,
		Id:          e.ID,
	}
}

// channelLink points at the private-channel deep link form t.me/c/<id>
func channelLink(chatID int64) string {
	id := strconv.FormatInt(chatID, 10)
	if len(id) > 4 && id[:4] == "-100" {
		id = id[4:]
	}
	return "https://t.me/c/" + id
}
