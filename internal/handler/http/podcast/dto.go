// Package podcast provides HTTP handlers for podcast-related endpoints.
// It includes handlers for directory search with store-through persistence
// and retrieval of stored podcasts.
package podcast

import (
	"time"

	"podcast-browser/internal/domain/entity"
)

// DTO represents the JSON structure for podcast data transfer.
type DTO struct {
	ID             int64      `json:"id"`
	TrackID        int64      `json:"track_id"`
	TrackName      string     `json:"track_name"`
	ArtistName     string     `json:"artist_name"`
	CollectionName string     `json:"collection_name"`
	Description    string     `json:"description"`
	ArtworkURL100  string     `json:"artwork_url_100"`
	ArtworkURL600  string     `json:"artwork_url_600"`
	FeedURL        string     `json:"feed_url"`
	TrackViewURL   string     `json:"track_view_url"`
	Country        string     `json:"country"`
	TrackCount     int        `json:"track_count"`
	ReleaseDate    *time.Time `json:"release_date,omitempty"`
	Genres         []string   `json:"genres"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// toDTO converts a podcast entity into its transfer representation.
func toDTO(p *entity.Podcast) DTO {
	return DTO{
		ID:             p.ID,
		TrackID:        p.TrackID,
		TrackName:      p.TrackName,
		ArtistName:     p.ArtistName,
		CollectionName: p.CollectionName,
		Description:    p.Description,
		ArtworkURL100:  p.ArtworkURL100,
		ArtworkURL600:  p.ArtworkURL600,
		FeedURL:        p.FeedURL,
		TrackViewURL:   p.TrackViewURL,
		Country:        p.Country,
		TrackCount:     p.TrackCount,
		ReleaseDate:    p.ReleaseDate,
		Genres:         p.Genres,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
