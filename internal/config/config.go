package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`

	// StoreDriver picks the reliability tier: "sqlite" keeps pending jobs
	// across restarts, "memory" loses everything with the process.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	DBPath      string `envconfig:"DB_PATH" default:"./data/assistant.db"`

	DefaultTZ     string `envconfig:"DEFAULT_TZ" default:"Asia/Kolkata"`
	DefaultLocale string `envconfig:"DEFAULT_LOCALE" default:"en"` // en|hi

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
