package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/getsentry/sentry-go"
	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"

	"github.com/reshetovitsme/tg-channel-relay/internal/di"
	"github.com/reshetovitsme/tg-channel-relay/internal/scheduler"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	httpServer "github.com/reshetovitsme/tg-channel-relay/internal/transport/http"
	"github.com/reshetovitsme/tg-channel-relay/internal/transport/telegram"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Relay stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		return err
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	logger := do.MustInvoke[*slog.Logger](injector)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv.String(),
		}); err != nil {
			logger.Warn("Sentry initialization failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Get services from DI container
	b, err := do.Invoke[*bot.Bot](injector)
	if err != nil {
		return err
	}
	server := do.MustInvoke[*httpServer.Server](injector)
	jobs := do.MustInvoke[*scheduler.Scheduler](injector)

	switch cfg.UpdateMode {
	case config.UpdateModeWebhook:
		if err := telegram.RegisterWebhook(ctx, b, cfg); err != nil {
			return err
		}
	default:
		if err := telegram.DropWebhook(ctx, b); err != nil {
			logger.Warn("Failed to remove webhook before polling", "error", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gctx)
	})

	if cfg.UpdateMode == config.UpdateModePolling {
		g.Go(func() error {
			b.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		return jobs.Run(gctx)
	})

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Debug("sd_notify ready failed", "error", err)
	}

	logger.Info("Relay started",
		"mode", cfg.UpdateMode,
		"port", cfg.HTTPPort,
		"target_channel_id", cfg.TargetChannelID,
		"admins", len(cfg.AdminIDs),
		"storage", cfg.StorageDriver,
	)

	<-gctx.Done()
	logger.Info("Shutting down...")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	return g.Wait()
}
