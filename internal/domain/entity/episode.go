package entity

import "time"

// Episode represents a single RSS feed item reduced to display form.
// Episodes are built fresh on every feed fetch and never persisted.
// The order of episodes always follows feed document order.
type Episode struct {
	ID            string     // stable identifier derived from GUID/link, never empty
	Title         string
	Description   string     // HTML-stripped, capped at 300 characters
	Duration      string     // canonical H:MM:SS or M:SS, empty when unknown
	PublishDate   time.Time  // falls back to parse time when the feed lacks one
	AudioURL      string     // may be empty
	ImageURL      string     // episode image, else channel image, else empty
	EpisodeNumber *int
	SeasonNumber  *int
	GUID          string     // raw feed guid, may equal ID
	StoreURL      string     // deep link into the podcast store, or the generic podcast page

	// PodcastID and PodcastName attribute the episode to its podcast in
	// cross-podcast views. Zero values outside those views.
	PodcastID   int64
	PodcastName string
}

// CatalogEpisode is one entry from the remote directory's episode index
// for a given podcast. Entries are fetched on demand and held only for the
// duration of one matching pass.
type CatalogEpisode struct {
	TrackID     int64
	TrackName   string
	ReleaseDate time.Time
}

// EpisodePage is the result of resolving one page of a podcast's feed.
// Total is the full feed item count, not the page size.
type EpisodePage struct {
	Episodes []Episode
	HasMore  bool
	Total    int
}
