package episode

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/observability/metrics"

	"golang.org/x/sync/errgroup"
)

// Featured assembles the cross-podcast featured view: a small page of recent
// episodes from each of the most recently stored podcasts, fetched
// concurrently. A failing feed contributes nothing instead of failing the
// whole view. Results keep podcast order, not goroutine completion order.
// Load-more is the same call with the next page; appending is the caller's
// concern.
func (s *Service) Featured(ctx context.Context, page int) ([]entity.Episode, error) {
	start := time.Now()

	podcasts, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	if len(podcasts) > s.featured.MaxPodcasts {
		podcasts = podcasts[:s.featured.MaxPodcasts]
	}

	results := make([][]entity.Episode, len(podcasts))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range podcasts {
		i, p := i, p
		g.Go(func() error {
			pg := s.pageForPodcast(gctx, p, page, s.featured.EpisodesPerPodcast)
			results[i] = pg.Episodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]entity.Episode, 0, s.featured.MaxEpisodes)
	for i, eps := range results {
		for _, ep := range eps {
			if len(merged) >= s.featured.MaxEpisodes {
				break
			}
			ep.PodcastID = podcasts[i].ID
			ep.PodcastName = podcasts[i].TrackName
			merged = append(merged, ep)
		}
	}

	slog.Info("featured episodes aggregated",
		slog.Int("podcasts", len(podcasts)),
		slog.Int("episodes", len(merged)),
		slog.Int("page", page))
	metrics.RecordFeaturedFanout(time.Since(start))

	return merged, nil
}
