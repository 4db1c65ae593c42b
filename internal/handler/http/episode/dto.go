// Package episode provides HTTP handlers for episode browsing endpoints:
// the per-podcast paginated feed view and the cross-podcast featured view.
package episode

import (
	"time"

	"podcast-browser/internal/domain/entity"
)

// DTO represents the JSON structure for a single episode.
// Field names are camelCase because episodes are consumed directly by the
// browsing clients, which expect that shape.
type DTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Duration      string    `json:"duration"`
	PublishDate   time.Time `json:"publishDate"`
	AudioURL      string    `json:"audioUrl"`
	ImageURL      string    `json:"imageUrl"`
	EpisodeNumber *int      `json:"episodeNumber,omitempty"`
	SeasonNumber  *int      `json:"seasonNumber,omitempty"`
	StoreURL      string    `json:"storeUrl"`
	PodcastID     int64     `json:"podcastId,omitempty"`
	PodcastName   string    `json:"podcastName,omitempty"`
}

func toDTO(ep entity.Episode) DTO {
	return DTO{
		ID:            ep.ID,
		Title:         ep.Title,
		Description:   ep.Description,
		Duration:      ep.Duration,
		PublishDate:   ep.PublishDate,
		AudioURL:      ep.AudioURL,
		ImageURL:      ep.ImageURL,
		EpisodeNumber: ep.EpisodeNumber,
		SeasonNumber:  ep.SeasonNumber,
		StoreURL:      ep.StoreURL,
		PodcastID:     ep.PodcastID,
		PodcastName:   ep.PodcastName,
	}
}

func toDTOs(episodes []entity.Episode) []DTO {
	dtos := make([]DTO, 0, len(episodes))
	for _, ep := range episodes {
		dtos = append(dtos, toDTO(ep))
	}
	return dtos
}
