package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/observability/metrics"
)

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	WrapperType string     `json:"wrapperType"`
	Kind        string     `json:"kind"`
	TrackID     int64      `json:"trackId"`
	TrackName   string     `json:"trackName"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

// LookupEpisodes fetches the catalog's episode list for the podcast with the
// given catalog track identifier. The first result row is the podcast itself,
// so only rows whose wrapperType marks them as episodes are kept.
func (c *Client) LookupEpisodes(ctx context.Context, trackID int64) ([]entity.CatalogEpisode, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(trackID, 10))
	params.Set("entity", "podcastEpisode")
	params.Set("limit", strconv.Itoa(c.lookupLimit))

	start := time.Now()
	body, err := c.get(ctx, c.lookupURL, params)
	if err != nil {
		metrics.RecordCatalogLookup(time.Since(start), false)
		return nil, fmt.Errorf("episode lookup for %d: %w", trackID, err)
	}

	var decoded lookupResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		metrics.RecordCatalogLookup(time.Since(start), false)
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	metrics.RecordCatalogLookup(time.Since(start), true)

	episodes := make([]entity.CatalogEpisode, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.WrapperType != "podcastEpisode" {
			continue
		}
		ep := entity.CatalogEpisode{
			TrackID:   r.TrackID,
			TrackName: r.TrackName,
		}
		if r.ReleaseDate != nil {
			ep.ReleaseDate = *r.ReleaseDate
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}
