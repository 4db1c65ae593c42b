package episode

import (
	"log/slog"
	"net/http"

	"podcast-browser/internal/handler/http/requestid"
	"podcast-browser/internal/handler/http/respond"
)

// FeaturedResponse is the JSON response for the cross-podcast featured view.
type FeaturedResponse struct {
	Message  string `json:"message"`
	Episodes []DTO  `json:"episodes"`
	Count    int    `json:"count"`
	Page     int    `json:"page"`
}

// FeaturedHandler serves the aggregated featured view: recent episodes from
// the most recently stored podcasts. Load-more is the same call with the next
// page value.
type FeaturedHandler struct {
	Svc    Service
	Logger *slog.Logger
}

func (h FeaturedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)

	page, _ := parsePaging(r)

	h.Logger.Info("featured episodes request",
		slog.Int("page", page),
		slog.String("request_id", reqID))

	episodes, err := h.Svc.Featured(ctx, page)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	message := "featured episodes retrieved successfully"
	if len(episodes) == 0 {
		message = "no featured episodes available"
	}

	respond.JSON(w, http.StatusOK, FeaturedResponse{
		Message:  message,
		Episodes: toDTOs(episodes),
		Count:    len(episodes),
		Page:     page,
	})
}
