package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"podcast-browser/internal/domain/entity"
)

type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []searchResult `json:"results"`
}

type searchResult struct {
	WrapperType    string     `json:"wrapperType"`
	Kind           string     `json:"kind"`
	TrackID        int64      `json:"trackId"`
	CollectionID   int64      `json:"collectionId"`
	TrackName      string     `json:"trackName"`
	ArtistName     string     `json:"artistName"`
	CollectionName string     `json:"collectionName"`
	ArtworkURL100  string     `json:"artworkUrl100"`
	ArtworkURL600  string     `json:"artworkUrl600"`
	FeedURL        string     `json:"feedUrl"`
	TrackViewURL   string     `json:"trackViewUrl"`
	Country        string     `json:"country"`
	TrackCount     int        `json:"trackCount"`
	ReleaseDate    *time.Time `json:"releaseDate"`
	Genres         []string   `json:"genres"`
}

// Search queries the directory for podcasts matching term. An empty country
// falls back to the configured default market. Results that are not podcast
// tracks are skipped.
func (c *Client) Search(ctx context.Context, term, country string) ([]entity.Podcast, error) {
	if country == "" {
		country = c.defaultCountry
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("country", country)
	params.Set("media", "podcast")
	params.Set("entity", "podcast")
	params.Set("limit", strconv.Itoa(c.searchLimit))

	body, err := c.get(ctx, c.searchURL, params)
	if err != nil {
		return nil, fmt.Errorf("podcast search: %w", err)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	podcasts := make([]entity.Podcast, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if p, ok := r.toPodcast(); ok {
			podcasts = append(podcasts, p)
		}
	}
	return podcasts, nil
}

// toPodcast maps a directory result row to a podcast entity. Rows that are
// not podcast tracks, or that carry no usable identifier, are rejected.
func (r searchResult) toPodcast() (entity.Podcast, bool) {
	if r.Kind != "podcast" {
		return entity.Podcast{}, false
	}
	trackID := r.TrackID
	if trackID == 0 {
		trackID = r.CollectionID
	}
	if trackID == 0 {
		return entity.Podcast{}, false
	}
	return entity.Podcast{
		TrackID:        trackID,
		TrackName:      r.TrackName,
		ArtistName:     r.ArtistName,
		CollectionName: r.CollectionName,
		ArtworkURL100:  r.ArtworkURL100,
		ArtworkURL600:  r.ArtworkURL600,
		FeedURL:        r.FeedURL,
		TrackViewURL:   r.TrackViewURL,
		Country:        r.Country,
		TrackCount:     r.TrackCount,
		ReleaseDate:    r.ReleaseDate,
		Genres:         r.Genres,
	}, true
}
