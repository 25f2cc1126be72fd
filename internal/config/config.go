package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken       string `env:"TELEGRAM_TOKEN" env-required:"true"`
	StorePath           string `env:"STORE_PATH" env-default:"planner_db.json"`
	ReportIntervalHours int    `env:"REPORT_INTERVAL_HOURS" env-default:"0"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: read env: %w", err)
	}
	if strings.TrimSpace(cfg.TelegramToken) == "" {
		return cfg, fmt.Errorf("config: TELEGRAM_TOKEN is required")
	}
	if cfg.ReportIntervalHours < 0 {
		return cfg, fmt.Errorf("config: REPORT_INTERVAL_HOURS must not be negative")
	}
	return cfg, nil
}

// ReportInterval converts the configured hours into a duration.
// Zero disables periodic reports.
func (c Config) ReportInterval() time.Duration {
	return time.Duration(c.ReportIntervalHours) * time.Hour
}
