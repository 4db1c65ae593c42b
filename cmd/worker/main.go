package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"podcast-browser/internal/config"
	pgRepo "podcast-browser/internal/infra/adapter/persistence/postgres"
	"podcast-browser/internal/infra/db"
	"podcast-browser/internal/infra/directory"
	"podcast-browser/internal/infra/feed"
	workerPkg "podcast-browser/internal/infra/worker"
	"podcast-browser/internal/observability/logging"
	podUC "podcast-browser/internal/usecase/podcast"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// API 側がマイグレーションを実行するので、完了まで待つ
	if err := waitForMigrations(database, logger); err != nil {
		logger.Error("database schema not ready", slog.Any("error", err))
		os.Exit(1)
	}

	workerCfg := workerPkg.LoadConfigFromEnv(logger)
	refresher := buildRefresher(database, cfg)
	metrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	health := workerPkg.NewHealthServer(":"+workerCfg.HealthPort, logger)
	go func() {
		if err := health.Start(ctx); err != nil {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	c := cron.New(cron.WithLocation(workerCfg.Location()))
	_, err = c.AddFunc(workerCfg.CronSchedule, func() {
		runRefreshJob(ctx, logger, refresher, metrics, workerCfg.RefreshTimeout)
	})
	if err != nil {
		logger.Error("failed to schedule refresh job",
			slog.String("schedule", workerCfg.CronSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	health.SetReady(true)
	logger.Info("refresh worker started",
		slog.String("schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone),
		slog.String("health_port", workerCfg.HealthPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down refresh worker...")

	cronCtx := c.Stop()
	cancel()
	select {
	case <-cronCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("timed out waiting for running job to finish")
	}
	logger.Info("refresh worker stopped")
}

// buildRefresher wires the repository and remote clients into the refresh
// use case.
func buildRefresher(database *sql.DB, cfg *config.Config) *podUC.Refresher {
	repo := pgRepo.NewPodcastRepo(database)

	feedClient := &http.Client{Timeout: cfg.Feed.Timeout}
	fetcher := feed.NewFetcher(feedClient, cfg.Feed.UserAgent)

	directoryClient := &http.Client{Timeout: cfg.Directory.Timeout}
	dir := directory.NewClient(directoryClient, cfg.Directory)

	return &podUC.Refresher{Repo: repo, Directory: dir, Feeds: fetcher}
}

// waitForMigrations polls until the podcasts table exists. The API process
// owns migrations; the worker just needs the schema in place before its
// first run.
func waitForMigrations(database *sql.DB, logger *slog.Logger) error {
	const (
		attempts = 10
		interval = 3 * time.Second
	)

	var lastErr error
	for i := 1; i <= attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := database.ExecContext(ctx, "SELECT 1 FROM podcasts LIMIT 1")
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Info("waiting for database schema",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err))
		time.Sleep(interval)
	}
	return lastErr
}

// runRefreshJob executes one bounded refresh run and records its outcome.
func runRefreshJob(
	ctx context.Context,
	logger *slog.Logger,
	refresher *podUC.Refresher,
	metrics *workerPkg.Metrics,
	timeout time.Duration,
) {
	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("catalog refresh started")
	start := time.Now()

	stats, err := refresher.RefreshAll(jobCtx)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordRun("failure", duration, 0)
		logger.Error("catalog refresh failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return
	}

	metrics.RecordRun("success", duration, stats.Refreshed)
	logger.Info("catalog refresh finished",
		slog.Duration("duration", duration),
		slog.Int("total", stats.Total),
		slog.Int("refreshed", stats.Refreshed),
		slog.Int("delisted", stats.Delisted),
		slog.Int("feed_errors", stats.FeedErrors),
		slog.Int("failed", stats.Failed))
}
