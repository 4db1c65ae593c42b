package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"podcast-browser/internal/domain/entity"
)

// LookupPodcast fetches the directory's current metadata for a single podcast
// by its catalog track identifier. Returns (nil, nil) when the directory no
// longer lists the podcast.
func (c *Client) LookupPodcast(ctx context.Context, trackID int64) (*entity.Podcast, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(trackID, 10))
	params.Set("entity", "podcast")

	body, err := c.get(ctx, c.lookupURL, params)
	if err != nil {
		return nil, fmt.Errorf("podcast lookup for %d: %w", trackID, err)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode podcast lookup response: %w", err)
	}

	for _, r := range decoded.Results {
		if p, ok := r.toPodcast(); ok {
			return &p, nil
		}
	}
	return nil, nil
}
