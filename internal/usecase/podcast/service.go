// Package podcast implements podcast catalog management: directory search
// with store-through persistence, and retrieval of stored podcasts.
package podcast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"podcast-browser/internal/common/pagination"
	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/observability/metrics"
	"podcast-browser/internal/repository"
)

// DirectorySearcher queries the remote podcast directory.
type DirectorySearcher interface {
	Search(ctx context.Context, term, country string) ([]entity.Podcast, error)
}

// Service provides podcast management use cases.
type Service struct {
	Repo      repository.PodcastRepository
	Directory DirectorySearcher
}

// PaginatedResult contains one page of podcasts and pagination metadata.
type PaginatedResult struct {
	Data       []*entity.Podcast
	Pagination pagination.Metadata
}

// SearchAndStore queries the directory and upserts every result keyed by its
// catalog track id, so repeated searches refresh metadata instead of
// duplicating rows. A row that fails validation or persistence is skipped;
// the rest of the batch still lands. Returns the podcasts that were stored.
func (s *Service) SearchAndStore(ctx context.Context, term, country string) ([]*entity.Podcast, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	found, err := s.Directory.Search(ctx, term, country)
	if err != nil {
		return nil, fmt.Errorf("directory search: %w", err)
	}

	start := time.Now()
	stored := make([]*entity.Podcast, 0, len(found))
	for i := range found {
		p := found[i]
		if err := p.Validate(); err != nil {
			slog.Warn("skipping invalid podcast from directory",
				slog.Int64("track_id", p.TrackID),
				slog.Any("error", err))
			continue
		}
		id, err := s.Repo.Upsert(ctx, &p)
		if err != nil {
			slog.Warn("skipping podcast that failed to store",
				slog.Int64("track_id", p.TrackID),
				slog.Any("error", err))
			continue
		}
		p.ID = id
		stored = append(stored, &p)
	}
	metrics.RecordOperationDuration("store_podcasts", time.Since(start))

	slog.Info("directory search stored podcasts",
		slog.String("term", term),
		slog.Int("found", len(found)),
		slog.Int("stored", len(stored)))

	return stored, nil
}

// List retrieves all stored podcasts, most recently stored first.
func (s *Service) List(ctx context.Context) ([]*entity.Podcast, error) {
	podcasts, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	return podcasts, nil
}

// ListPaginated retrieves podcasts with pagination support. It retrieves the
// page data and total count, then derives pagination metadata.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	podcasts, err := s.Repo.ListPaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list podcasts paginated: %w", err)
	}

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count podcasts: %w", err)
	}
	metrics.UpdatePodcastsTotal(int(total))

	return &PaginatedResult{
		Data:       podcasts,
		Pagination: pagination.NewMetadata(params.Page, params.Limit, total),
	}, nil
}

// Get retrieves a stored podcast by local id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Podcast, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get podcast %d: %w", id, err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}
