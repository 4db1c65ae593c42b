package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"podcast-browser/internal/common/pagination"
	"podcast-browser/internal/config"
	pgRepo "podcast-browser/internal/infra/adapter/persistence/postgres"
	"podcast-browser/internal/infra/db"
	"podcast-browser/internal/infra/directory"
	"podcast-browser/internal/infra/feed"
	"podcast-browser/internal/observability/logging"
	"podcast-browser/internal/observability/tracing"

	epUC "podcast-browser/internal/usecase/episode"
	podUC "podcast-browser/internal/usecase/podcast"

	hhttp "podcast-browser/internal/handler/http"
	hepisode "podcast-browser/internal/handler/http/episode"
	hpodcast "podcast-browser/internal/handler/http/podcast"
	"podcast-browser/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()
	cfg := loadConfig(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, cfg, version)

	runServer(logger, handler, version)
}

// initLogger initializes the structured logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads application configuration from CONFIG_FILE (or config.yaml)
// with environment overrides.
func loadConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, remote clients, and use case services, then
// registers all routes and the middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.Config, version string) http.Handler {
	repo := pgRepo.NewPodcastRepo(database)

	feedClient := &http.Client{Timeout: cfg.Feed.Timeout}
	fetcher := feed.NewFetcher(feedClient, cfg.Feed.UserAgent)

	directoryClient := &http.Client{Timeout: cfg.Directory.Timeout}
	dir := directory.NewClient(directoryClient, cfg.Directory)

	podSvc := &podUC.Service{Repo: repo, Directory: dir}
	epSvc := epUC.NewService(repo, fetcher, dir, cfg)

	mux := setupRoutes(database, version, podSvc, epSvc, logger)
	return applyMiddleware(logger, mux)
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	version string,
	podSvc *podUC.Service,
	epSvc *epUC.Service,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	paginationCfg := pagination.LoadFromEnv()

	hpodcast.Register(mux, podSvc, paginationCfg, logger)
	hepisode.Register(mux, epSvc, logger)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID → Tracing → Rate Limit → Recovery →
// Logging → Input Validation → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	// レート制限: 1分間に120リクエストまで（IPごと）
	rateLimiter := hhttp.NewRateLimiter(120, time.Minute)

	// 遅いフィードにリクエストを長時間つかませない
	requestTimeout := 30 * time.Second

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
