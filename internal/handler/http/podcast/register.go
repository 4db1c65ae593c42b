package podcast

import (
	"context"
	"log/slog"
	"net/http"

	"podcast-browser/internal/common/pagination"
	"podcast-browser/internal/domain/entity"
	podUC "podcast-browser/internal/usecase/podcast"
)

// Service is the podcast use case surface consumed by the handlers.
type Service interface {
	SearchAndStore(ctx context.Context, term, country string) ([]*entity.Podcast, error)
	ListPaginated(ctx context.Context, params pagination.Params) (*podUC.PaginatedResult, error)
	Get(ctx context.Context, id int64) (*entity.Podcast, error)
}

// Register registers all podcast-related HTTP handlers with the given mux.
// It sets up routes for searching the remote directory and for listing and
// retrieving stored podcasts.
func Register(mux *http.ServeMux, svc Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST   /podcasts/search", SearchHandler{Svc: svc, Logger: logger})
	mux.Handle("GET    /podcasts", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    /podcasts/", GetHandler{Svc: svc})
}
