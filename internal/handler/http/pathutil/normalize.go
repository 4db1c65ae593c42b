package pathutil

import (
	"regexp"
	"strings"
)

// pathPattern pairs a route regex with its normalized template.
type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization.
var pathPatterns = []pathPattern{
	// Podcast routes with IDs
	{pattern: regexp.MustCompile(`^/podcasts/\d+$`), template: "/podcasts/:id"},

	// Episode routes with IDs
	{pattern: regexp.MustCompile(`^/episodes/podcast/\d+$`), template: "/episodes/podcast/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with IDs (e.g. /podcasts/123) to
// template format (e.g. /podcasts/:id). Static paths such as /health,
// /metrics, /episodes/featured and /podcasts/search pass through unchanged.
//
// Query parameters and trailing slashes are stripped first:
//
//	NormalizePath("/podcasts/123?page=1")      // "/podcasts/:id"
//	NormalizePath("/episodes/podcast/42/")     // "/episodes/podcast/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}

	// No match found, return original path
	return path
}
