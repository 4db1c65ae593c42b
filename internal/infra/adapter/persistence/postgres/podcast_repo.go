package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/observability/metrics"
	"podcast-browser/internal/repository"
)

type PodcastRepo struct{ db *sql.DB }

func NewPodcastRepo(db *sql.DB) repository.PodcastRepository {
	return &PodcastRepo{db: db}
}

const podcastColumns = `id, track_id, track_name, artist_name, collection_name, description,
artwork_url_100, artwork_url_600, feed_url, track_view_url, country, track_count,
release_date, genres, created_at, updated_at`

// observe records the query duration histogram for one repository operation.
func (repo *PodcastRepo) observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}

// scanPodcast is a helper function to scan a podcast row including genres
func scanPodcast(rows *sql.Rows) (*entity.Podcast, error) {
	var p entity.Podcast
	var genresJSON []byte
	if err := rows.Scan(
		&p.ID, &p.TrackID, &p.TrackName, &p.ArtistName, &p.CollectionName, &p.Description,
		&p.ArtworkURL100, &p.ArtworkURL600, &p.FeedURL, &p.TrackViewURL, &p.Country, &p.TrackCount,
		&p.ReleaseDate, &genresJSON, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(genresJSON) > 0 {
		if err := json.Unmarshal(genresJSON, &p.Genres); err != nil {
			return nil, fmt.Errorf("unmarshal genres: %w", err)
		}
	}

	return &p, nil
}

func (repo *PodcastRepo) Upsert(ctx context.Context, podcast *entity.Podcast) (int64, error) {
	defer repo.observe("upsert_podcast", time.Now())
	const query = `
INSERT INTO podcasts (
    track_id, track_name, artist_name, collection_name, description,
    artwork_url_100, artwork_url_600, feed_url, track_view_url, country,
    track_count, release_date, genres
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (track_id) DO UPDATE SET
    track_name      = EXCLUDED.track_name,
    artist_name     = EXCLUDED.artist_name,
    collection_name = EXCLUDED.collection_name,
    description     = EXCLUDED.description,
    artwork_url_100 = EXCLUDED.artwork_url_100,
    artwork_url_600 = EXCLUDED.artwork_url_600,
    feed_url        = EXCLUDED.feed_url,
    track_view_url  = EXCLUDED.track_view_url,
    country         = EXCLUDED.country,
    track_count     = EXCLUDED.track_count,
    release_date    = EXCLUDED.release_date,
    genres          = EXCLUDED.genres,
    updated_at      = now()
RETURNING id`

	genresJSON, err := json.Marshal(podcast.Genres)
	if err != nil {
		return 0, fmt.Errorf("Upsert: marshal genres: %w", err)
	}

	var id int64
	err = repo.db.QueryRowContext(ctx, query,
		podcast.TrackID, podcast.TrackName, podcast.ArtistName, podcast.CollectionName,
		podcast.Description, podcast.ArtworkURL100, podcast.ArtworkURL600, podcast.FeedURL,
		podcast.TrackViewURL, podcast.Country, podcast.TrackCount, podcast.ReleaseDate,
		genresJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("Upsert: %w", err)
	}
	return id, nil
}

func (repo *PodcastRepo) List(ctx context.Context) ([]*entity.Podcast, error) {
	defer repo.observe("list_podcasts", time.Now())
	const query = `
SELECT ` + podcastColumns + `
FROM podcasts
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	podcasts := make([]*entity.Podcast, 0, 50)
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		podcasts = append(podcasts, p)
	}
	return podcasts, rows.Err()
}

func (repo *PodcastRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Podcast, error) {
	defer repo.observe("list_podcasts_paginated", time.Now())
	const query = `
SELECT ` + podcastColumns + `
FROM podcasts
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	podcasts := make([]*entity.Podcast, 0, limit)
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPaginated: %w", err)
		}
		podcasts = append(podcasts, p)
	}
	return podcasts, rows.Err()
}

func (repo *PodcastRepo) Count(ctx context.Context) (int64, error) {
	defer repo.observe("count_podcasts", time.Now())
	const query = `SELECT COUNT(*) FROM podcasts`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *PodcastRepo) Get(ctx context.Context, id int64) (*entity.Podcast, error) {
	defer repo.observe("get_podcast", time.Now())
	const query = `
SELECT ` + podcastColumns + `
FROM podcasts
WHERE id = $1
LIMIT 1`
	var p entity.Podcast
	var genresJSON []byte
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.TrackID, &p.TrackName, &p.ArtistName, &p.CollectionName, &p.Description,
		&p.ArtworkURL100, &p.ArtworkURL600, &p.FeedURL, &p.TrackViewURL, &p.Country, &p.TrackCount,
		&p.ReleaseDate, &genresJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	if len(genresJSON) > 0 {
		if err := json.Unmarshal(genresJSON, &p.Genres); err != nil {
			return nil, fmt.Errorf("Get: unmarshal genres: %w", err)
		}
	}

	return &p, nil
}
