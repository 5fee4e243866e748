package di

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	channelRepo "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/repository"
	feedDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/domain"
	feedRepo "github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/repository"
	feedService "github.com/reshetovitsme/tg-channel-relay/internal/modules/feed/service"
	kickService "github.com/reshetovitsme/tg-channel-relay/internal/modules/kick/service"
	relayService "github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/service"
	"github.com/reshetovitsme/tg-channel-relay/internal/scheduler"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/logging"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/storage"
	httpServer "github.com/reshetovitsme/tg-channel-relay/internal/transport/http"
	"github.com/reshetovitsme/tg-channel-relay/internal/transport/telegram"
)

// TitleRefreshJob is the scheduler job name for the title refresh
const TitleRefreshJob = "title-refresh"

// Setup initializes the dependency injection container. Services are
// lazy: nothing touches storage or Telegram until it is invoked.
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Logger
	do.Provide(injector, func(i do.Injector) (*slog.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := logging.New(cfg.LogLevel, cfg.LogJSON)
		slog.SetDefault(logger)
		return logger, nil
	})

	// Register Blob Store
	do.Provide(injector, func(i do.Injector) (storage.BlobStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store, err := storage.Open(context.Background(), cfg)
		if err != nil {
			return nil, oops.With("storage_driver", cfg.StorageDriver, "context", "failed to open storage").Wrap(err)
		}
		return store, nil
	})

	// Register Channel Repository
	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[storage.BlobStore](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return channelRepo.NewBlobStorage(store, cfg.StateKey, logger), nil
	})

	// Register Activity Repository
	do.Provide(injector, func(i do.Injector) (feedRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[storage.BlobStore](i)
		return feedRepo.NewBlobStorage(store, cfg.ActivityKey), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[feedRepo.Repository](i)
		logger := do.MustInvoke[*slog.Logger](i)
		feedCfg := feedDomain.FeedConfig{
			Title:       "Channel relay activity",
			Link:        cfg.WebhookURL,
			Description: "Posts relayed to the target channel",
		}
		return feedService.New(repo, cfg.ActivityLimit, feedCfg, logger), nil
	})

	// Register Messenger (bot attached once it exists)
	do.Provide(injector, func(i do.Injector) (*telegram.Messenger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return telegram.NewMessenger(cfg, logger), nil
	})

	// Register Relay Service
	do.Provide(injector, func(i do.Injector) (*relayService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[channelRepo.Repository](i)
		messenger := do.MustInvoke[*telegram.Messenger](i)
		activity := do.MustInvoke[*feedService.Service](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return relayService.New(cfg, repo, messenger, activity, logger), nil
	})

	// Register Kick Service
	do.Provide(injector, func(i do.Injector) (*kickService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[channelRepo.Repository](i)
		messenger := do.MustInvoke[*telegram.Messenger](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return kickService.New(repo, messenger, cfg.KickConcurrency, logger), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		relay := do.MustInvoke[*relayService.Service](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return telegram.New(relay, logger), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegram.Handler](i)
		kicker := do.MustInvoke[*kickService.Service](i)
		feed := do.MustInvoke[*feedService.Service](i)
		server := httpServer.New(cfg, handler, kicker, feed)
		server.SetLogger(do.MustInvoke[*slog.Logger](i))
		return server, nil
	})

	// Register Scheduler
	do.Provide(injector, func(i do.Injector) (*scheduler.Scheduler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)

		s, err := scheduler.New(logger)
		if err != nil {
			return nil, err
		}

		if cfg.TitleRefreshInterval > 0 {
			relay := do.MustInvoke[*relayService.Service](i)
			if err := s.Every(TitleRefreshJob, cfg.TitleRefreshInterval, relay.RefreshTitles); err != nil {
				return nil, err
			}
		}
		return s, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegram.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
			bot.WithServerURL(cfg.TelegramAPIURL),
			bot.WithAllowedUpdates(telegram.AllowedUpdates),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Set bot in messenger
		messenger := do.MustInvoke[*telegram.Messenger](i)
		messenger.SetBot(b)

		return b, nil
	})

	return injector, nil
}

// Shutdown releases resources held by the container
func Shutdown(injector do.Injector) error {
	// Close storage if it exists
	if store, err := do.Invoke[storage.BlobStore](injector); err == nil && store != nil {
		if err := store.Close(); err != nil {
			return oops.With("context", "closing storage").Wrap(err)
		}
	}

	return nil
}
