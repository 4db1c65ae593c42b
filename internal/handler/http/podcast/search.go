package podcast

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"podcast-browser/internal/handler/http/requestid"
	"podcast-browser/internal/handler/http/respond"
	podUC "podcast-browser/internal/usecase/podcast"
)

// maxTermLength bounds the search term to keep directory queries sane.
const maxTermLength = 255

// SearchRequest is the JSON body for the directory search endpoint.
type SearchRequest struct {
	Term    string `json:"term"`
	Country string `json:"country,omitempty"`
}

// SearchResponse is the JSON response for the directory search endpoint.
type SearchResponse struct {
	Message  string `json:"message"`
	Count    int    `json:"count"`
	Podcasts []DTO  `json:"podcasts"`
}

// SearchHandler searches the remote podcast directory and stores every result.
type SearchHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP parses the search request, runs the directory search with
// store-through persistence, and returns the stored podcasts.
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}
	if utf8.RuneCountInString(req.Term) > maxTermLength {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("term is too long"))
		return
	}

	h.Logger.Info("directory search request",
		slog.String("term", req.Term),
		slog.String("country", req.Country),
		slog.String("request_id", reqID))

	stored, err := h.Svc.SearchAndStore(ctx, req.Term, req.Country)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, podUC.ErrEmptyTerm) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	dtos := make([]DTO, 0, len(stored))
	for _, p := range stored {
		dtos = append(dtos, toDTO(p))
	}

	respond.JSON(w, http.StatusOK, SearchResponse{
		Message:  "podcasts stored successfully",
		Count:    len(dtos),
		Podcasts: dtos,
	})
}
