package podcast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"podcast-browser/internal/common/pagination"
	"podcast-browser/internal/domain/entity"
	podUC "podcast-browser/internal/usecase/podcast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	stored    []*entity.Podcast
	paginated *podUC.PaginatedResult
	podcast   *entity.Podcast
	err       error

	gotTerm    string
	gotCountry string
	gotID      int64
}

func (s *stubService) SearchAndStore(_ context.Context, term, country string) ([]*entity.Podcast, error) {
	s.gotTerm, s.gotCountry = term, country
	if s.err != nil {
		return nil, s.err
	}
	return s.stored, nil
}

func (s *stubService) ListPaginated(_ context.Context, _ pagination.Params) (*podUC.PaginatedResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.paginated, nil
}

func (s *stubService) Get(_ context.Context, id int64) (*entity.Podcast, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.podcast, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePodcast(id, trackID int64, name string) *entity.Podcast {
	return &entity.Podcast{
		ID:        id,
		TrackID:   trackID,
		TrackName: name,
		FeedURL:   "https://example.com/feed.xml",
		Genres:    []string{"Technology"},
	}
}

func TestSearchHandler(t *testing.T) {
	svc := &stubService{stored: []*entity.Podcast{
		samplePodcast(1, 100, "First"),
		samplePodcast(2, 200, "Second"),
	}}
	h := SearchHandler{Svc: svc, Logger: discardLogger()}

	body := strings.NewReader(`{"term":"tech","country":"US"}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/podcasts/search", body))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "tech", svc.gotTerm)
	assert.Equal(t, "US", svc.gotCountry)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Podcasts, 2)
	assert.Equal(t, int64(100), resp.Podcasts[0].TrackID)
	assert.Equal(t, "First", resp.Podcasts[0].TrackName)
}

func TestSearchHandler_InvalidBody(t *testing.T) {
	h := SearchHandler{Svc: &stubService{}, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/podcasts/search", strings.NewReader("{not json")))

	assert.Equal(t, 400, rec.Code)
}

func TestSearchHandler_EmptyTerm(t *testing.T) {
	h := SearchHandler{Svc: &stubService{err: podUC.ErrEmptyTerm}, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/podcasts/search", strings.NewReader(`{"term":"  "}`)))

	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "required")
}

func TestSearchHandler_TermTooLong(t *testing.T) {
	h := SearchHandler{Svc: &stubService{}, Logger: discardLogger()}

	long := strings.Repeat("a", 300)
	body := strings.NewReader(`{"term":"` + long + `"}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/podcasts/search", body))

	assert.Equal(t, 400, rec.Code)
}

func TestSearchHandler_DirectoryError(t *testing.T) {
	h := SearchHandler{Svc: &stubService{err: errors.New("upstream 503")}, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/podcasts/search", strings.NewReader(`{"term":"tech"}`)))

	assert.Equal(t, 500, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestListHandler(t *testing.T) {
	svc := &stubService{paginated: &podUC.PaginatedResult{
		Data: []*entity.Podcast{
			samplePodcast(1, 100, "First"),
			samplePodcast(2, 200, "Second"),
		},
		Pagination: pagination.NewMetadata(1, 10, 2),
	}}
	h := ListHandler{Svc: svc, PaginationCfg: pagination.DefaultConfig(), Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/podcasts?page=1&limit=10", nil))

	require.Equal(t, 200, rec.Code)

	var resp pagination.Response[DTO]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestListHandler_InvalidParams(t *testing.T) {
	h := ListHandler{Svc: &stubService{}, PaginationCfg: pagination.DefaultConfig(), Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/podcasts?page=0", nil))

	assert.Equal(t, 400, rec.Code)
}

func TestListHandler_RepositoryError(t *testing.T) {
	h := ListHandler{Svc: &stubService{err: errors.New("pq: down")}, PaginationCfg: pagination.DefaultConfig(), Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/podcasts", nil))

	assert.Equal(t, 500, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestGetHandler(t *testing.T) {
	svc := &stubService{podcast: samplePodcast(5, 500, "Stored Show")}
	h := GetHandler{Svc: svc}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/podcasts/5", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)

	var dto DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "Stored Show", dto.TrackName)
}

func TestGetHandler_InvalidID(t *testing.T) {
	h := GetHandler{Svc: &stubService{}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/podcasts/abc", nil))

	assert.Equal(t, 400, rec.Code)
}

func TestGetHandler_NotFound(t *testing.T) {
	h := GetHandler{Svc: &stubService{err: podUC.ErrNotFound}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/podcasts/99", nil))

	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}
