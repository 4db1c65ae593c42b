package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"podcast-browser/internal/handler/http/requestid"
	"podcast-browser/internal/handler/http/respond"
	"podcast-browser/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
)

// Logging returns middleware that emits one structured log line per request.
// Because episode pages are assembled from live feeds, the duration field is
// the first place slow feed hosts show up; request and trace ids are included
// so a slow page can be correlated with the feed fetch spans behind it.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())

			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover returns middleware that turns a handler panic into a 500 response
// instead of killing the server. The panic value and stack are logged; the
// client only ever sees the generic error body.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					respond.SafeError(
						w,
						http.StatusInternalServerError,
						fmt.Errorf("internal error"),
					)

					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request body size. Only the search endpoint accepts a
// body at all, and its payload is a short term and country code.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientWindow holds the recent request timestamps for one client IP.
type clientWindow struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// prune drops timestamps older than cutoff. Caller holds cw.mu.
func (cw *clientWindow) prune(cutoff time.Time) {
	recent := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	cw.timestamps = recent
}

// RateLimiter limits requests per client IP with a sliding window. Each
// episode page request can fan out to a feed host and the directory, so the
// limit here is what keeps one aggressive client from exhausting the remote
// lookup budget for everyone.
type RateLimiter struct {
	windows   sync.Map // map[string]*clientWindow
	limit     int      // 時間窓あたりの許可リクエスト数
	window    time.Duration
	cleanMu   sync.Mutex
	lastClean time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window
// per client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		lastClean: time.Now(),
	}
}

// Limit rejects requests over the per-IP budget with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)

		// 古いクライアントの窓を定期的に破棄する（メモリリーク防止）
		rl.periodicCleanup()

		if !rl.allow(ip) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow records the request timestamp when the client is under its budget.
func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	val, _ := rl.windows.LoadOrStore(ip, &clientWindow{
		timestamps: make([]time.Time, 0, rl.limit),
	})
	cw := val.(*clientWindow)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.prune(now.Add(-rl.window))
	if len(cw.timestamps) >= rl.limit {
		return false
	}

	cw.timestamps = append(cw.timestamps, now)
	return true
}

// periodicCleanup sweeps idle client windows at most once per 10 minutes.
func (rl *RateLimiter) periodicCleanup() {
	rl.cleanMu.Lock()
	defer rl.cleanMu.Unlock()

	if time.Since(rl.lastClean) < 10*time.Minute {
		return
	}
	rl.lastClean = time.Now()

	// 窓の2倍より古い記録しか持たないクライアントは丸ごと削除
	cutoff := time.Now().Add(-rl.window * 2)
	rl.windows.Range(func(key, value interface{}) bool {
		cw := value.(*clientWindow)
		cw.mu.Lock()
		cw.prune(cutoff)
		empty := len(cw.timestamps) == 0
		cw.mu.Unlock()
		if empty {
			rl.windows.Delete(key)
		}
		return true
	})
}

// extractIP resolves the client IP, trusting proxy headers first:
// X-Forwarded-For (first entry), then X-Real-IP, then RemoteAddr.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP parses the first address in a comma-separated list.
func parseFirstIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			if ip := net.ParseIP(s[:i]); ip != nil {
				return ip.String()
			}
			return ""
		}
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
