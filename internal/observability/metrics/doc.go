// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Feed fetch and episode resolution metrics
//   - Directory lookup metrics
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "podcast-browser/internal/observability/metrics"
//
//	func fetchFeed(url string) {
//	    start := time.Now()
//	    // ... fetch and normalize ...
//	    metrics.RecordFeedFetch(time.Since(start), len(episodes))
//	}
package metrics
