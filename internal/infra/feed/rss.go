// Package feed provides fetching and normalization of podcast RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/observability/metrics"
	"podcast-browser/internal/resilience/circuitbreaker"
	"podcast-browser/internal/resilience/retry"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// Fetcher retrieves podcast feeds and normalizes their items into episodes.
// It includes circuit breaker and retry logic for improved reliability.
type Fetcher struct {
	client         *http.Client
	userAgent      string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFetcher creates a new Fetcher with the given HTTP client and user agent.
// The client must carry the feed fetch timeout; no ambient client is used.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:         client,
		userAgent:      userAgent,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses the RSS/Atom feed at feedURL and returns its
// items normalized into episodes, in feed document order. podcastID is used
// for synthesized episode identifiers when a feed item carries no usable GUID.
// A fetch or parse failure is returned to the caller; individual malformed
// items never abort the whole feed.
func (f *Fetcher) Fetch(ctx context.Context, feedURL, podcastID string) ([]entity.Episode, error) {
	var episodes []entity.Episode
	start := time.Now()

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL, podcastID)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		episodes = cbResult.([]entity.Episode)
		return nil
	})

	if retryErr != nil {
		metrics.RecordFeedFetchError()
		return nil, retryErr
	}

	metrics.RecordFeedFetch(time.Since(start), len(episodes))
	return episodes, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
// Feed URLs are validated for SSRF at store time, not here.
func (f *Fetcher) doFetch(ctx context.Context, feedURL, podcastID string) ([]entity.Episode, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = f.userAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	return Normalize(parsed, podcastID), nil
}
