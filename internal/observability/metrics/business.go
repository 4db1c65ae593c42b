package metrics

import (
	"time"
)

// RecordFeedFetch records a successful feed fetch along with the number of
// episodes it yielded. This metric helps track feed host performance and
// catalog size per podcast.
func RecordFeedFetch(duration time.Duration, episodeCount int) {
	FeedFetchDuration.Observe(duration.Seconds())
	FeedEpisodesFetched.Observe(float64(episodeCount))
}

// RecordFeedFetchError records a feed fetch that failed after retries.
func RecordFeedFetchError() {
	FeedFetchErrors.Inc()
}

// RecordCatalogLookup records the result of a catalog episode lookup.
func RecordCatalogLookup(duration time.Duration, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	CatalogLookupsTotal.WithLabelValues(result).Inc()
	CatalogLookupDuration.Observe(duration.Seconds())
}

// RecordDeepLinkResolution records how an episode's store link was resolved.
// Method should be one of "guid", "title", "date", or "none".
func RecordDeepLinkResolution(method string) {
	DeepLinkResolutionsTotal.WithLabelValues(method).Inc()
}

// RecordFeaturedFanout records the duration of a featured episodes
// aggregation across podcasts.
func RecordFeaturedFanout(duration time.Duration) {
	FeaturedFanoutDuration.Observe(duration.Seconds())
}

// UpdatePodcastsTotal updates the total count of podcasts in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdatePodcastsTotal(count int) {
	PodcastsTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_podcasts", "upsert_podcast").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
