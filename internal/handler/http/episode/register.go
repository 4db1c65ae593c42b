package episode

import (
	"context"
	"log/slog"
	"net/http"

	"podcast-browser/internal/domain/entity"
)

// Service is the episode use case surface consumed by the handlers.
type Service interface {
	GetPage(ctx context.Context, podcastID int64, page, limit int) (*entity.EpisodePage, error)
	Featured(ctx context.Context, page int) ([]entity.Episode, error)
}

// Register registers all episode-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("GET    /episodes/featured", FeaturedHandler{Svc: svc, Logger: logger})
	mux.Handle("GET    /episodes/podcast/", ListHandler{Svc: svc, Logger: logger})
}
