package podcast

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/repository"
)

// DirectoryLookup fetches the directory's current metadata for one podcast.
// Returns (nil, nil) when the podcast is no longer listed.
type DirectoryLookup interface {
	LookupPodcast(ctx context.Context, trackID int64) (*entity.Podcast, error)
}

// FeedChecker fetches a podcast's feed. The refresher only uses it to verify
// the feed is still reachable and parseable.
type FeedChecker interface {
	Fetch(ctx context.Context, feedURL, podcastID string) ([]entity.Episode, error)
}

// Refresher re-syncs stored podcast metadata against the directory. Run
// periodically by the worker so artwork, feed URLs, and episode counts do not
// go stale between user searches.
type Refresher struct {
	Repo      repository.PodcastRepository
	Directory DirectoryLookup
	Feeds     FeedChecker
}

// RefreshStats summarizes one refresh run.
type RefreshStats struct {
	Total      int // podcasts examined
	Refreshed  int // metadata re-stored successfully
	Delisted   int // no longer present in the directory
	FeedErrors int // refreshed, but the feed could not be fetched
	Failed     int // lookup or store failed
}

// RefreshAll looks up every stored podcast in the directory and upserts the
// current metadata. Per-podcast failures are logged and skipped so one bad
// row cannot stall the whole run; the error return is reserved for being
// unable to list the catalog at all.
func (r *Refresher) RefreshAll(ctx context.Context) (RefreshStats, error) {
	podcasts, err := r.Repo.List(ctx)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("list podcasts for refresh: %w", err)
	}

	stats := RefreshStats{Total: len(podcasts)}
	for _, stored := range podcasts {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		current, err := r.Directory.LookupPodcast(ctx, stored.TrackID)
		if err != nil {
			stats.Failed++
			slog.Warn("podcast refresh lookup failed",
				slog.Int64("track_id", stored.TrackID),
				slog.Any("error", err))
			continue
		}
		if current == nil {
			stats.Delisted++
			slog.Info("podcast no longer listed in directory",
				slog.Int64("track_id", stored.TrackID),
				slog.String("track_name", stored.TrackName))
			continue
		}

		// ディレクトリが feedUrl を返さないことがあるため、既存値を保持する
		if current.FeedURL == "" {
			current.FeedURL = stored.FeedURL
		}

		if err := current.Validate(); err != nil {
			stats.Failed++
			slog.Warn("podcast refresh produced invalid metadata",
				slog.Int64("track_id", stored.TrackID),
				slog.Any("error", err))
			continue
		}
		if _, err := r.Repo.Upsert(ctx, current); err != nil {
			stats.Failed++
			slog.Warn("podcast refresh store failed",
				slog.Int64("track_id", stored.TrackID),
				slog.Any("error", err))
			continue
		}
		stats.Refreshed++

		if current.FeedURL != "" {
			if _, err := r.Feeds.Fetch(ctx, current.FeedURL, strconv.FormatInt(stored.ID, 10)); err != nil {
				stats.FeedErrors++
				slog.Warn("podcast feed unreachable during refresh",
					slog.Int64("track_id", stored.TrackID),
					slog.String("feed_url", current.FeedURL),
					slog.Any("error", err))
				continue
			}
		}
	}

	slog.Info("podcast refresh completed",
		slog.Int("total", stats.Total),
		slog.Int("refreshed", stats.Refreshed),
		slog.Int("delisted", stats.Delisted),
		slog.Int("feed_errors", stats.FeedErrors),
		slog.Int("failed", stats.Failed))

	return stats, nil
}
