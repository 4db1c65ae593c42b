package episode

import (
	"fmt"
	"regexp"
)

// Feed GUIDs carry catalog episode identifiers in a handful of shapes:
// an `i=` query parameter on a store URL, a bare 13-digit track identifier,
// or that same 13-digit shape embedded as a standalone token in an otherwise
// opaque string. The embedded check must keep the full track-id shape
// (`10` + 11 digits): feeds routinely embed unix timestamps and other long
// digit runs in GUIDs, and those are not identifiers. The link element is
// checked with the same rules when the GUID yields nothing.
var (
	queryIDPattern       = regexp.MustCompile(`[?&]i=(\d{10,})`)
	bareTrackPattern     = regexp.MustCompile(`^10\d{11}$`)
	embeddedTrackPattern = regexp.MustCompile(`(?:^|\D)(10\d{11})(?:\D|$)`)
	catalogIDPattern     = regexp.MustCompile(`^\d{10,}$`)
)

// ExtractEpisodeID derives a stable episode identifier from a feed item.
// It prefers a catalog track identifier found in the GUID, then in the link.
// When neither carries one, it synthesizes a deterministic identifier from
// the podcast identifier and the item's position in the feed, so the same
// feed always yields the same identifiers.
func ExtractEpisodeID(guid, link string, index int, podcastID string) string {
	if id, ok := extractCatalogID(guid); ok {
		return id
	}
	if id, ok := extractCatalogID(link); ok {
		return id
	}
	return fmt.Sprintf("%s-episode-%d", podcastID, index+1)
}

// IsCatalogID reports whether id has the shape of a catalog track
// identifier: a run of at least ten digits and nothing else.
func IsCatalogID(id string) bool {
	return catalogIDPattern.MatchString(id)
}

func extractCatalogID(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if m := queryIDPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if bareTrackPattern.MatchString(s) {
		return s, true
	}
	if m := embeddedTrackPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}
