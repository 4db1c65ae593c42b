package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthServer exposes liveness, readiness, and metrics endpoints for the
// worker process. Readiness flips to true once the initial wiring (database,
// cron registration) has completed.
type HealthServer struct {
	server *http.Server
	logger *slog.Logger
	ready  atomic.Bool
}

// NewHealthServer creates a health server listening on addr.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	hs := &HealthServer{logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", hs.handleHealth)
	mux.HandleFunc("/health/ready", hs.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	hs.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return hs
}

// SetReady marks the worker as ready (or not) for the readiness probe.
func (hs *HealthServer) SetReady(ready bool) {
	hs.ready.Store(ready)
}

// Start runs the health server until ctx is cancelled, then shuts it down
// gracefully.
func (hs *HealthServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.server.Shutdown(shutdownCtx); err != nil {
			hs.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil
	}
}

func (hs *HealthServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (hs *HealthServer) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !hs.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
