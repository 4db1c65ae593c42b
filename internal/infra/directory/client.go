// Package directory implements the remote podcast directory client used for
// catalog search and episode lookup. All calls go through a client-side rate
// limiter, a circuit breaker, and retry with backoff, since the upstream API
// throttles aggressively.
package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"podcast-browser/internal/config"
	"podcast-browser/internal/resilience/circuitbreaker"
	"podcast-browser/internal/resilience/retry"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Client talks to the podcast directory API.
type Client struct {
	httpClient     *http.Client
	searchURL      string
	lookupURL      string
	searchLimit    int
	lookupLimit    int
	defaultCountry string
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewClient creates a directory client. The HTTP client must carry the
// directory request timeout.
func NewClient(httpClient *http.Client, cfg config.DirectoryConfig) *Client {
	return &Client{
		httpClient:     httpClient,
		searchURL:      cfg.SearchURL,
		lookupURL:      cfg.LookupURL,
		searchLimit:    cfg.SearchLimit,
		lookupLimit:    cfg.LookupLimit,
		defaultCountry: cfg.DefaultCountry,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.DirectoryLookupConfig()),
		retryConfig:    retry.DirectoryLookupConfig(),
	}
}

// get performs a rate-limited GET against the directory API and returns the
// response body. Non-200 responses become HTTPError so the retry layer can
// distinguish retryable status codes.
func (c *Client) get(ctx context.Context, baseURL string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := baseURL + "?" + params.Encode()

	var body []byte
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doGet(ctx, reqURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("directory circuit breaker open, request rejected",
					slog.String("service", "directory-lookup"),
					slog.String("url", baseURL),
					slog.String("state", c.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		body = cbResult.([]byte)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("directory returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
