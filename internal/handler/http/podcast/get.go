package podcast

import (
	"errors"
	"net/http"

	"podcast-browser/internal/handler/http/pathutil"
	"podcast-browser/internal/handler/http/respond"
	podUC "podcast-browser/internal/usecase/podcast"
)

// GetHandler returns a single stored podcast by its local id.
type GetHandler struct{ Svc Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/podcasts/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, podUC.ErrInvalidID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, podUC.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(p))
}
