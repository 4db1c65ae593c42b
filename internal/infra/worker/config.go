// Package worker holds the scheduled-refresh worker's configuration, health
// endpoints, and job metrics.
package worker

import (
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultCronSchedule runs the catalog refresh every six hours.
	DefaultCronSchedule = "0 */6 * * *"
	// DefaultTimezone is the timezone the cron schedule is evaluated in.
	DefaultTimezone = "UTC"
	// DefaultRefreshTimeout bounds a single refresh run.
	DefaultRefreshTimeout = 30 * time.Minute
	// DefaultHealthPort serves the worker's health and metrics endpoints.
	DefaultHealthPort = "9091"
)

// Config controls the refresh worker schedule and runtime limits.
type Config struct {
	CronSchedule   string
	Timezone       string
	RefreshTimeout time.Duration
	HealthPort     string
}

// LoadConfigFromEnv builds the worker configuration from environment
// variables. Invalid values are logged and replaced with defaults so a typo
// in deployment config degrades the schedule instead of crashing the worker.
func LoadConfigFromEnv(logger *slog.Logger) Config {
	cfg := Config{
		CronSchedule:   DefaultCronSchedule,
		Timezone:       DefaultTimezone,
		RefreshTimeout: DefaultRefreshTimeout,
		HealthPort:     DefaultHealthPort,
	}

	if v := os.Getenv("WORKER_CRON_SCHEDULE"); v != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(v); err != nil {
			logger.Warn("invalid WORKER_CRON_SCHEDULE, using default",
				slog.String("value", v),
				slog.String("default", DefaultCronSchedule),
				slog.Any("error", err))
		} else {
			cfg.CronSchedule = v
		}
	}

	if v := os.Getenv("WORKER_TIMEZONE"); v != "" {
		if _, err := time.LoadLocation(v); err != nil {
			logger.Warn("invalid WORKER_TIMEZONE, using default",
				slog.String("value", v),
				slog.String("default", DefaultTimezone),
				slog.Any("error", err))
		} else {
			cfg.Timezone = v
		}
	}

	if v := os.Getenv("WORKER_REFRESH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			logger.Warn("invalid WORKER_REFRESH_TIMEOUT, using default",
				slog.String("value", v),
				slog.Duration("default", DefaultRefreshTimeout))
		} else {
			cfg.RefreshTimeout = d
		}
	}

	if v := os.Getenv("WORKER_HEALTH_PORT"); v != "" {
		cfg.HealthPort = v
	}

	return cfg
}

// Location resolves the configured timezone. The value has been validated by
// LoadConfigFromEnv, so resolution failure falls back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
