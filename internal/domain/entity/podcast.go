// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Podcast and Episode, along with
// their validation rules and domain-specific errors.
package entity

import (
	"time"
)

// Podcast represents a podcast stored from the remote directory.
// TrackID is the directory's identifier and is unique across the catalog;
// ID is the local surrogate key.
type Podcast struct {
	ID             int64
	TrackID        int64
	TrackName      string
	ArtistName     string
	CollectionName string
	Description    string
	ArtworkURL100  string
	ArtworkURL600  string
	FeedURL        string
	TrackViewURL   string
	Country        string
	TrackCount     int
	ReleaseDate    *time.Time
	Genres         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate validates the Podcast entity fields.
// FeedURL is optional (the directory omits it for some podcasts) but must be
// a valid http(s) URL when present.
func (p *Podcast) Validate() error {
	if p.TrackID <= 0 {
		return &ValidationError{Field: "trackID", Message: "must be positive"}
	}
	if p.TrackName == "" {
		return &ValidationError{Field: "trackName", Message: "is required"}
	}
	if p.FeedURL != "" {
		if err := ValidateURL(p.FeedURL); err != nil {
			return err
		}
	}
	return nil
}
