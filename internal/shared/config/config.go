package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string
	LogLevel string
	Postgres PostgresConfig
	Telegram TelegramConfig
}

// PostgresConfig configures the listener failure journal.
// An empty URL disables it.
type PostgresConfig struct {
	URL string
}

// TelegramConfig configures failure alerts and the update bridge.
type TelegramConfig struct {
	Token       string
	AlertChatID int64
	Bridge      BridgeConfig
}

// BridgeConfig controls publishing of incoming bot updates onto the bus.
type BridgeConfig struct {
	Enabled bool
	Timeout int // Long polling timeout in seconds
}

// IsDev reports whether human-readable logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// .env is optional; a missing file means OS-set env vars only.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	bindings := map[string]string{
		"app.env":                 "APP_ENV",
		"log.level":               "LOG_LEVEL",
		"postgres.url":            "POSTGRES_URL",
		"telegram.token":          "TELEGRAM_BOT_TOKEN",
		"telegram.alert_chat_id":  "TELEGRAM_ALERT_CHAT_ID",
		"telegram.bridge.enabled": "TELEGRAM_BRIDGE_ENABLED",
		"telegram.bridge.timeout": "TELEGRAM_POLL_TIMEOUT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("telegram.alert_chat_id", 0)
	v.SetDefault("telegram.bridge.enabled", false)
	v.SetDefault("telegram.bridge.timeout", 60)

	cfg := Config{
		AppEnv:   v.GetString("app.env"),
		LogLevel: v.GetString("log.level"),
		Postgres: PostgresConfig{
			URL: v.GetString("postgres.url"),
		},
		Telegram: TelegramConfig{
			Token:       v.GetString("telegram.token"),
			AlertChatID: v.GetInt64("telegram.alert_chat_id"),
			Bridge: BridgeConfig{
				Enabled: v.GetBool("telegram.bridge.enabled"),
				Timeout: v.GetInt("telegram.bridge.timeout"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AppEnv != "dev" && c.AppEnv != "prod" {
		return fmt.Errorf("APP_ENV must be 'dev' or 'prod', got %q", c.AppEnv)
	}
	if c.Telegram.Bridge.Enabled && c.Telegram.Token == "" {
		return errors.New("TELEGRAM_BRIDGE_ENABLED requires TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.AlertChatID != 0 && c.Telegram.Token == "" {
		return errors.New("TELEGRAM_ALERT_CHAT_ID requires TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.Bridge.Timeout <= 0 {
		return fmt.Errorf("TELEGRAM_POLL_TIMEOUT must be positive, got %d", c.Telegram.Bridge.Timeout)
	}
	return nil
}
