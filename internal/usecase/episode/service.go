// Package episode implements episode browsing: feed-backed pagination and
// resolution of store deep links against the remote catalog.
package episode

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"podcast-browser/internal/config"
	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/observability/metrics"
	"podcast-browser/internal/repository"
)

const (
	// storeBaseURL is the public podcast page prefix; appending ?i=<trackID>
	// deep-links to a single episode.
	storeBaseURL = "https://podcasts.apple.com/podcast/id"

	// MaxLimit caps the page size for episode listings.
	MaxLimit     = 50
	DefaultLimit = 10
)

// FeedSource fetches and normalizes a podcast feed.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL, podcastID string) ([]entity.Episode, error)
}

// CatalogClient looks up a podcast's episode list in the remote directory.
type CatalogClient interface {
	LookupEpisodes(ctx context.Context, trackID int64) ([]entity.CatalogEpisode, error)
}

// Service provides episode browsing use cases. Episodes are never persisted;
// every page is served from the podcast's live feed with store links resolved
// on the fly.
type Service struct {
	Repo    repository.PodcastRepository
	Feeds   FeedSource
	Catalog CatalogClient

	matcher        *Matcher
	maxRemoteItems int
	featured       config.FeaturedConfig
}

// NewService wires the episode service with its collaborators and the
// matching policy from configuration.
func NewService(repo repository.PodcastRepository, feeds FeedSource, catalog CatalogClient, cfg *config.Config) *Service {
	return &Service{
		Repo:           repo,
		Feeds:          feeds,
		Catalog:        catalog,
		matcher:        NewMatcher(cfg.Matcher),
		maxRemoteItems: cfg.Matcher.MaxRemoteItems,
		featured:       cfg.Featured,
	}
}

// GetPage returns one page of episodes for the stored podcast with the given
// id. The whole feed is fetched to compute the total; the page slice then has
// its store links resolved. A feed that cannot be fetched degrades to an
// empty page rather than an error, so one dead feed never breaks browsing.
func (s *Service) GetPage(ctx context.Context, podcastID int64, page, limit int) (*entity.EpisodePage, error) {
	if podcastID <= 0 {
		return nil, ErrInvalidPodcastID
	}

	podcast, err := s.Repo.Get(ctx, podcastID)
	if err != nil {
		return nil, fmt.Errorf("get podcast %d: %w", podcastID, err)
	}
	if podcast == nil {
		return nil, ErrPodcastNotFound
	}

	return s.pageForPodcast(ctx, podcast, page, limit), nil
}

// pageForPodcast fetches the podcast's feed and assembles one page.
func (s *Service) pageForPodcast(ctx context.Context, podcast *entity.Podcast, page, limit int) *entity.EpisodePage {
	page, limit = clampPaging(page, limit)

	empty := &entity.EpisodePage{Episodes: []entity.Episode{}}

	if podcast.FeedURL == "" {
		slog.Info("podcast has no feed url, returning empty page",
			slog.Int64("podcast_id", podcast.ID))
		return empty
	}

	episodes, err := s.Feeds.Fetch(ctx, podcast.FeedURL, strconv.FormatInt(podcast.ID, 10))
	if err != nil {
		slog.Warn("feed fetch failed, returning empty page",
			slog.Int64("podcast_id", podcast.ID),
			slog.String("feed_url", podcast.FeedURL),
			slog.Any("error", err))
		return empty
	}

	total := len(episodes)
	start := (page - 1) * limit
	if start >= total {
		return &entity.EpisodePage{Episodes: []entity.Episode{}, Total: total}
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageEpisodes := make([]entity.Episode, end-start)
	copy(pageEpisodes, episodes[start:end])
	s.resolveStoreLinks(ctx, podcast, pageEpisodes, start)

	return &entity.EpisodePage{
		Episodes: pageEpisodes,
		HasMore:  page*limit < total,
		Total:    total,
	}
}

// resolveStoreLinks fills StoreURL for each episode on the page. feedOffset
// is the position of the first page episode within the full feed; the remote
// lookup budget counts feed positions, not page positions, so deep pages
// never trigger catalog traffic. The catalog list is fetched at most once
// per page.
func (s *Service) resolveStoreLinks(ctx context.Context, podcast *entity.Podcast, episodes []entity.Episode, feedOffset int) {
	podcastURL := storeBaseURL + strconv.FormatInt(podcast.TrackID, 10)

	var catalog []entity.CatalogEpisode
	catalogLoaded := false

	for i := range episodes {
		ep := &episodes[i]

		if IsCatalogID(ep.ID) {
			ep.StoreURL = podcastURL + "?i=" + ep.ID
			metrics.RecordDeepLinkResolution(MatchMethodGUID)
			continue
		}

		feedIndex := feedOffset + i
		if feedIndex >= s.maxRemoteItems || podcast.TrackID <= 0 {
			ep.StoreURL = podcastURL
			metrics.RecordDeepLinkResolution(MatchMethodNone)
			continue
		}

		if !catalogLoaded {
			catalogLoaded = true
			var err error
			catalog, err = s.Catalog.LookupEpisodes(ctx, podcast.TrackID)
			if err != nil {
				// 照合失敗は許容し、残りは汎用URLで返す
				slog.Warn("catalog lookup failed, falling back to podcast link",
					slog.Int64("track_id", podcast.TrackID),
					slog.Any("error", err))
				catalog = nil
			}
		}

		trackID, method, ok := s.matcher.Match(*ep, catalog)
		if ok {
			ep.StoreURL = podcastURL + "?i=" + strconv.FormatInt(trackID, 10)
		} else {
			ep.StoreURL = podcastURL
		}
		metrics.RecordDeepLinkResolution(method)
	}
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
