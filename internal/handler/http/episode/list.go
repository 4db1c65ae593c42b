package episode

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"podcast-browser/internal/common/pagination"
	"podcast-browser/internal/handler/http/pathutil"
	"podcast-browser/internal/handler/http/requestid"
	"podcast-browser/internal/handler/http/respond"
	epUC "podcast-browser/internal/usecase/episode"
)

// ListResponse is the JSON response for the per-podcast episode listing.
type ListResponse struct {
	Message     string `json:"message"`
	Episodes    []DTO  `json:"episodes"`
	HasMore     bool   `json:"hasMore"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

// ListHandler serves one page of a stored podcast's feed with store links
// resolved. A podcast whose feed is unreachable, or which has no feed URL,
// yields the empty page shape rather than an error.
type ListHandler struct {
	Svc    Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)

	podcastID, err := pathutil.ExtractID(r.URL.Path, "/episodes/podcast/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	page, limit := parsePaging(r)

	h.Logger.Info("episode page request",
		slog.Int64("podcast_id", podcastID),
		slog.Int("page", page),
		slog.Int("limit", limit),
		slog.String("request_id", reqID))

	result, err := h.Svc.GetPage(ctx, podcastID, page, limit)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, epUC.ErrInvalidPodcastID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, epUC.ErrPodcastNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	message := "episodes retrieved successfully"
	if result.Total == 0 {
		message = "no episodes available for this podcast"
	}

	respond.JSON(w, http.StatusOK, ListResponse{
		Message:     message,
		Episodes:    toDTOs(result.Episodes),
		HasMore:     result.HasMore,
		Total:       result.Total,
		CurrentPage: page,
		TotalPages:  pagination.CalculateTotalPages(int64(result.Total), limit),
	})
}

// parsePaging reads page and limit query parameters, applying the episode
// listing defaults and bounds. Unparsable values fall back to the defaults.
func parsePaging(r *http.Request) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	limit = epUC.DefaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > epUC.MaxLimit {
		limit = epUC.MaxLimit
	}
	return page, limit
}
