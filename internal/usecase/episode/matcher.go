package episode

import (
	"strings"
	"time"

	"podcast-browser/internal/config"
	"podcast-browser/internal/domain/entity"
)

// Match methods, recorded in metrics and useful when debugging why an
// episode did or did not get a deep link.
const (
	MatchMethodGUID  = "guid"
	MatchMethodTitle = "title"
	MatchMethodDate  = "date"
	MatchMethodNone  = "none"
)

// Matcher pairs normalized feed episodes with catalog episode entries.
// Feed metadata and catalog metadata rarely agree exactly, so matching is a
// cascade of heuristics: exact title, token overlap, then release date.
type Matcher struct {
	// TitleOverlapThreshold is the minimum token-overlap ratio for a fuzzy
	// title match.
	TitleOverlapThreshold float64
	// DateWindow is the maximum distance between the feed publish date and
	// the catalog release date for the date fallback.
	DateWindow time.Duration
}

// NewMatcher creates a Matcher with the configured thresholds.
func NewMatcher(cfg config.MatcherConfig) *Matcher {
	return &Matcher{
		TitleOverlapThreshold: cfg.TitleOverlapThreshold,
		DateWindow:            cfg.DateWindow,
	}
}

// Match finds the catalog entry for a feed episode. It returns the catalog
// track identifier, the method that produced the match, and whether any
// entry matched. Earlier cascade stages win over later ones across the whole
// catalog list.
func (m *Matcher) Match(ep entity.Episode, catalog []entity.CatalogEpisode) (int64, string, bool) {
	if len(catalog) == 0 {
		return 0, MatchMethodNone, false
	}

	epTitle := strings.TrimSpace(ep.Title)

	for _, c := range catalog {
		if strings.EqualFold(epTitle, strings.TrimSpace(c.TrackName)) {
			return c.TrackID, MatchMethodTitle, true
		}
	}

	for _, c := range catalog {
		if titleOverlap(epTitle, c.TrackName) > m.TitleOverlapThreshold {
			return c.TrackID, MatchMethodTitle, true
		}
	}

	if !ep.PublishDate.IsZero() {
		for _, c := range catalog {
			if c.ReleaseDate.IsZero() {
				continue
			}
			diff := ep.PublishDate.Sub(c.ReleaseDate)
			if diff < 0 {
				diff = -diff
			}
			if diff <= m.DateWindow {
				return c.TrackID, MatchMethodDate, true
			}
		}
	}

	return 0, MatchMethodNone, false
}

// titleOverlap computes the ratio of shared tokens between two titles.
// Tokens shorter than three runes are noise (articles, prepositions) and are
// ignored. A token counts as shared when either side contains the other,
// which tolerates prefixes like episode numbering.
func titleOverlap(a, b string) float64 {
	tokensA := significantTokens(a)
	tokensB := significantTokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	common := 0
	for _, ta := range tokensA {
		for _, tb := range tokensB {
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				common++
				break
			}
		}
	}

	max := len(tokensA)
	if len(tokensB) > max {
		max = len(tokensB)
	}
	return float64(common) / float64(max)
}

func significantTokens(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
