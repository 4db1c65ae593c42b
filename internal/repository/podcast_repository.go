package repository

import (
	"context"

	"podcast-browser/internal/domain/entity"
)

// PodcastRepository persists podcasts discovered through directory search.
type PodcastRepository interface {
	// Upsert inserts the podcast or, when a row with the same catalog track
	// identifier exists, refreshes its metadata. Returns the local row id.
	Upsert(ctx context.Context, podcast *entity.Podcast) (int64, error)
	// List retrieves all podcasts, most recently stored first.
	List(ctx context.Context) ([]*entity.Podcast, error)
	// ListPaginated retrieves podcasts most recently stored first, using
	// LIMIT and OFFSET. Used together with Count for pagination metadata.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Podcast, error)
	// Count returns the total number of stored podcasts.
	Count(ctx context.Context) (int64, error)
	// Get retrieves a podcast by local row id. Returns (nil, nil) when the
	// podcast does not exist.
	Get(ctx context.Context, id int64) (*entity.Podcast, error)
}
