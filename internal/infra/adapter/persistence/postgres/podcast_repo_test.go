package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/infra/adapter/persistence/postgres"
	"podcast-browser/internal/observability/metrics"
)

/* ──────────────────────────────── ヘルパ ──────────────────────────────── */

var podcastCols = []string{
	"id", "track_id", "track_name", "artist_name", "collection_name", "description",
	"artwork_url_100", "artwork_url_600", "feed_url", "track_view_url", "country",
	"track_count", "release_date", "genres", "created_at", "updated_at",
}

func row(p *entity.Podcast) *sqlmock.Rows {
	return sqlmock.NewRows(podcastCols).AddRow(
		p.ID, p.TrackID, p.TrackName, p.ArtistName, p.CollectionName, p.Description,
		p.ArtworkURL100, p.ArtworkURL600, p.FeedURL, p.TrackViewURL, p.Country,
		p.TrackCount, p.ReleaseDate, []byte(`["Technology"]`), p.CreatedAt, p.UpdatedAt,
	)
}

func samplePodcast() *entity.Podcast {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Podcast{
		ID: 1, TrackID: 123456789, TrackName: "Tech Talk",
		ArtistName: "Jane Host", CollectionName: "Tech Talk",
		FeedURL:      "https://example.com/feed.xml",
		TrackViewURL: "https://podcasts.apple.com/podcast/id123456789",
		Country:      "USA", TrackCount: 250,
		Genres:    []string{"Technology"},
		CreatedAt: now, UpdatedAt: now,
	}
}

/* ──────────────────────────────── 1. Get ──────────────────────────────── */

func TestPodcastRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := samplePodcast()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs(int64(1)).
		WillReturnRows(row(want))

	repo := postgres.NewPodcastRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPodcastRepo_GetNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(podcastCols)) // empty set

	repo := postgres.NewPodcastRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil for missing row", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 2. List ──────────────────────────────── */

func TestPodcastRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM podcasts`).
		WillReturnRows(row(samplePodcast()))

	repo := postgres.NewPodcastRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPodcastRepo_ListPaginated(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 20).
		WillReturnRows(row(samplePodcast()))

	repo := postgres.NewPodcastRepo(db)
	got, err := repo.ListPaginated(context.Background(), 20, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListPaginated err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 3. Count ──────────────────────────────── */

func TestPodcastRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM podcasts`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	repo := postgres.NewPodcastRepo(db)
	got, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if got != 7 {
		t.Fatalf("Count = %d, want 7", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 4. Upsert ──────────────────────────────── */

func TestPodcastRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	p := samplePodcast()
	mock.ExpectQuery(`INSERT INTO podcasts`).
		WithArgs(
			p.TrackID, p.TrackName, p.ArtistName, p.CollectionName, p.Description,
			p.ArtworkURL100, p.ArtworkURL600, p.FeedURL, p.TrackViewURL, p.Country,
			p.TrackCount, p.ReleaseDate, []byte(`["Technology"]`),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := postgres.NewPodcastRepo(db)
	id, err := repo.Upsert(context.Background(), p)
	if err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if id != 5 {
		t.Fatalf("Upsert id = %d, want 5", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPodcastRepo_UpsertQueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	p := samplePodcast()
	mock.ExpectQuery(`INSERT INTO podcasts`).
		WillReturnError(context.DeadlineExceeded)

	repo := postgres.NewPodcastRepo(db)
	if _, err := repo.Upsert(context.Background(), p); err == nil {
		t.Fatal("Upsert err=nil, want error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── メトリクス ──────────────────────────────── */

func TestPodcastRepo_RecordsQueryDuration(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := postgres.NewPodcastRepo(db)
	if _, err := repo.Count(context.Background()); err != nil {
		t.Fatalf("Count err=%v", err)
	}

	if n := testutil.CollectAndCount(metrics.DBQueryDuration, "db_query_duration_seconds"); n < 1 {
		t.Fatalf("db_query_duration_seconds children = %d, want at least one labeled operation", n)
	}
}
