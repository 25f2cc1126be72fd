package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-bot/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.TelegramToken)
	assert.Equal(t, "planner_db.json", cfg.StorePath)
	assert.Zero(t, cfg.ReportInterval())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("STORE_PATH", "/tmp/planner/data.json")
	t.Setenv("REPORT_INTERVAL_HOURS", "6")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/planner/data.json", cfg.StorePath)
	assert.Equal(t, 6*time.Hour, cfg.ReportInterval())
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsNegativeInterval(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("REPORT_INTERVAL_HOURS", "-1")

	_, err := config.Load()
	require.Error(t, err)
}
