package worker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "")
	t.Setenv("WORKER_TIMEZONE", "")
	t.Setenv("WORKER_REFRESH_TIMEOUT", "")
	t.Setenv("WORKER_HEALTH_PORT", "")

	cfg := LoadConfigFromEnv(discardLogger())

	assert.Equal(t, DefaultCronSchedule, cfg.CronSchedule)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultRefreshTimeout, cfg.RefreshTimeout)
	assert.Equal(t, DefaultHealthPort, cfg.HealthPort)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "15 3 * * *")
	t.Setenv("WORKER_TIMEZONE", "Asia/Riyadh")
	t.Setenv("WORKER_REFRESH_TIMEOUT", "10m")
	t.Setenv("WORKER_HEALTH_PORT", "9092")

	cfg := LoadConfigFromEnv(discardLogger())

	assert.Equal(t, "15 3 * * *", cfg.CronSchedule)
	assert.Equal(t, "Asia/Riyadh", cfg.Timezone)
	assert.Equal(t, 10*time.Minute, cfg.RefreshTimeout)
	assert.Equal(t, "9092", cfg.HealthPort)
}

func TestLoadConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "not a schedule")
	t.Setenv("WORKER_TIMEZONE", "Mars/Olympus")
	t.Setenv("WORKER_REFRESH_TIMEOUT", "-5m")

	cfg := LoadConfigFromEnv(discardLogger())

	assert.Equal(t, DefaultCronSchedule, cfg.CronSchedule)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultRefreshTimeout, cfg.RefreshTimeout)
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, Config{Timezone: "UTC"}.Location())
	assert.Equal(t, time.UTC, Config{Timezone: "Nowhere/Invalid"}.Location())

	loc := Config{Timezone: "Asia/Riyadh"}.Location()
	assert.Equal(t, "Asia/Riyadh", loc.String())
}
