package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

type Config struct {
	TelegramBotToken string  `koanf:"telegram_bot_token"`
	TelegramAPIURL   string  `koanf:"telegram_api_url" validate:"required,url"`
	TargetChannelID  int64   `koanf:"target_channel_id"`
	AdminIDs         []int64 `koanf:"-" validate:"required,min=1,dive,ne=0"`
	UpdateMarker     string  `koanf:"update_marker" validate:"required"`

	DedupWindow time.Duration `koanf:"dedup_window" validate:"min=1s"`

	UpdateMode    UpdateMode `koanf:"update_mode"`
	WebhookURL    string     `koanf:"webhook_url" validate:"omitempty,url"`
	WebhookPath   string     `koanf:"webhook_path" validate:"startswith=/"`
	WebhookSecret string     `koanf:"webhook_secret"`
	HTTPPort      string     `koanf:"http_port" validate:"required,numeric"`

	KickSecret      string `koanf:"kick_secret"`
	KickConcurrency int    `koanf:"kick_concurrency" validate:"min=1,max=100"`

	StorageDriver   StorageDriver `koanf:"storage_driver"`
	StoragePath     string        `koanf:"storage_path"`
	SQLitePath      string        `koanf:"sqlite_path"`
	MongoURI        string        `koanf:"mongo_uri"`
	MongoDatabase   string        `koanf:"mongo_database"`
	MongoCollection string        `koanf:"mongo_collection"`
	StateKey        string        `koanf:"state_key" validate:"required"`
	ActivityKey     string        `koanf:"activity_key" validate:"required"`
	ActivityLimit   int           `koanf:"activity_limit" validate:"min=1,max=1000"`

	TitleRefreshInterval time.Duration `koanf:"title_refresh_interval" validate:"min=0s"`
	APIRateLimit         int           `koanf:"api_rate_limit" validate:"min=1"`
	RequestTimeout       time.Duration `koanf:"request_timeout" validate:"min=1s,max=5m"`

	SentryDSN string `koanf:"sentry_dsn"`
	AppEnv    AppEnv `koanf:"app_env"`
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogJSON   bool   `koanf:"log_json"`
}

var defaults = map[string]any{
	"telegram_api_url":       "https://api.telegram.org",
	"update_marker":          "has a new post",
	"dedup_window":           "10m",
	"update_mode":            "polling",
	"webhook_path":           "/webhook",
	"http_port":              "8080",
	"kick_concurrency":       10,
	"storage_driver":         "file",
	"storage_path":           "./data",
	"sqlite_path":            "./data/relay.db",
	"mongo_database":         "relay",
	"mongo_collection":       "blobs",
	"state_key":              "relay-state-v1",
	"activity_key":           "activity-v1",
	"activity_limit":         50,
	"title_refresh_interval": "0s",
	"api_rate_limit":         25,
	"request_timeout":        "15s",
	"app_env":                "production",
	"log_level":              "info",
}

func Load() (*Config, error) {
	// .env is optional; real environment variables still win
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, oops.With("context", "loading .env").Wrap(err)
	}

	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values:
	// TELEGRAM_BOT_TOKEN -> telegram_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// koanf returns a string from env vars and a slice from config files
	if adminIDs := k.Get("admin_ids"); adminIDs != nil {
		switch v := adminIDs.(type) {
		case string:
			cfg.AdminIDs = ParseAdminIDs(v)
		case []interface{}:
			cfg.AdminIDs = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				case string:
					ids := ParseAdminIDs(val)
					return lo.FirstOrEmpty(ids), len(ids) == 1
				default:
					return 0, false
				}
			})
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() error {
	appEnv, err := ParseAppEnv(string(c.AppEnv))
	if err != nil {
		appEnv = AppEnvProduction
	}
	c.AppEnv = appEnv

	if c.StorageDriver, err = ParseStorageDriver(string(c.StorageDriver)); err != nil {
		return oops.With("storage_driver", c.StorageDriver).Wrap(err)
	}
	if c.UpdateMode, err = ParseUpdateMode(string(c.UpdateMode)); err != nil {
		return oops.With("update_mode", c.UpdateMode).Wrap(err)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	c.AdminIDs = lo.Uniq(c.AdminIDs)
	return nil
}

// Validate checks required fields and cross-field rules.
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.ErrMissingBotToken
	}
	if c.TargetChannelID == 0 {
		return errors.ErrMissingTarget
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return oops.With("context", "validating config").Wrap(fmt.Errorf("%w: %v", errors.ErrValidation, err))
	}

	if c.UpdateMode == UpdateModeWebhook && c.WebhookURL == "" {
		return oops.Wrap(fmt.Errorf("%w: webhook_url is required in webhook mode", errors.ErrValidation))
	}
	if c.StorageDriver == StorageDriverMongo && c.MongoURI == "" {
		return oops.Wrap(fmt.Errorf("%w: mongo_uri is required for the mongo driver", errors.ErrValidation))
	}
	return nil
}

// IsAdmin reports whether userID belongs to the fixed administrator set.
func (c *Config) IsAdmin(userID int64) bool {
	return lo.Contains(c.AdminIDs, userID)
}

// ParseAdminIDs parses a comma-separated user id list
func ParseAdminIDs(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
