package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/config"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

func validConfig() *config.Config {
	return &config.Config{
		TelegramBotToken: "123:abc",
		TelegramAPIURL:   "https://api.telegram.org",
		TargetChannelID:  -1009,
		AdminIDs:         []int64{1, 2},
		UpdateMarker:     "has a new post",
		DedupWindow:      10 * time.Minute,
		UpdateMode:       config.UpdateModePolling,
		WebhookPath:      "/webhook",
		HTTPPort:         "8080",
		KickConcurrency:  10,
		StorageDriver:    config.StorageDriverFile,
		StoragePath:      "./data",
		StateKey:         "relay-state-v1",
		ActivityKey:      "activity-v1",
		ActivityLimit:    50,
		APIRateLimit:     25,
		RequestTimeout:   15 * time.Second,
		AppEnv:           config.AppEnvProduction,
		LogLevel:         "info",
	}
}

func TestParseAdminIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int64{}, config.ParseAdminIDs(""))
	assert.Equal(t, []int64{1, 22, -3}, config.ParseAdminIDs("1, 22,,-3"))
	assert.Equal(t, []int64{7}, config.ParseAdminIDs("x,7"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"missing token", func(c *config.Config) { c.TelegramBotToken = "" }, errors.ErrMissingBotToken},
		{"missing target", func(c *config.Config) { c.TargetChannelID = 0 }, errors.ErrMissingTarget},
		{"no admins", func(c *config.Config) { c.AdminIDs = nil }, errors.ErrValidation},
		{"zero admin", func(c *config.Config) { c.AdminIDs = []int64{0} }, errors.ErrValidation},
		{"short dedup window", func(c *config.Config) { c.DedupWindow = time.Millisecond }, errors.ErrValidation},
		{"bad log level", func(c *config.Config) { c.LogLevel = "trace" }, errors.ErrValidation},
		{"webhook without url", func(c *config.Config) { c.UpdateMode = config.UpdateModeWebhook }, errors.ErrValidation},
		{"mongo without uri", func(c *config.Config) { c.StorageDriver = config.StorageDriverMongo }, errors.ErrValidation},
		{"relative webhook path", func(c *config.Config) { c.WebhookPath = "hook" }, errors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.True(t, cfg.IsAdmin(2))
	assert.False(t, cfg.IsAdmin(3))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TARGET_CHANNEL_ID", "-100500")
	t.Setenv("ADMIN_IDS", "10,20,10")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("DEDUP_WINDOW", "5m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(-100500), cfg.TargetChannelID)
	assert.Equal(t, []int64{10, 20}, cfg.AdminIDs)
	assert.Equal(t, config.StorageDriverSqlite, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.DedupWindow)
	assert.Equal(t, config.UpdateModePolling, cfg.UpdateMode)
	assert.Equal(t, "relay-state-v1", cfg.StateKey)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
