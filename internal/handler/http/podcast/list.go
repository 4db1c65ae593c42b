package podcast

import (
	"log/slog"
	"net/http"
	"time"

	"podcast-browser/internal/common/pagination"
	"podcast-browser/internal/handler/http/requestid"
	"podcast-browser/internal/handler/http/respond"
)

// ListHandler returns stored podcasts, most recently stored first, with
// pagination metadata.
type ListHandler struct {
	Svc           Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		h.Logger.Warn("invalid pagination parameters",
			slog.Any("error", err),
			slog.String("request_id", reqID))
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListPaginated(ctx, params)
	if err != nil {
		h.Logger.Error("failed to list podcasts",
			slog.Any("error", err),
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit),
			slog.String("request_id", reqID))
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, p := range result.Data {
		dtos = append(dtos, toDTO(p))
	}

	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", time.Since(startTime).Seconds())

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Pagination))
}
