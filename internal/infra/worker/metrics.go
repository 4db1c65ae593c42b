package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the refresh job metrics. Registered against an explicit
// registerer so tests can use an isolated registry.
type Metrics struct {
	RefreshRunsTotal       *prometheus.CounterVec
	RefreshDurationSeconds prometheus.Histogram
	PodcastsRefreshedTotal prometheus.Counter
	LastSuccessTimestamp   prometheus.Gauge
}

// NewMetrics creates and registers the worker metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RefreshRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_refresh_runs_total",
			Help: "Total number of catalog refresh runs by status",
		}, []string{"status"}),
		RefreshDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_refresh_duration_seconds",
			Help:    "Duration of catalog refresh runs in seconds",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 1800},
		}),
		PodcastsRefreshedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "worker_podcasts_refreshed_total",
			Help: "Total number of podcasts whose metadata was refreshed",
		}),
		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_refresh_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful refresh run",
		}),
	}
}

// RecordRun records the outcome of one refresh run.
func (m *Metrics) RecordRun(status string, duration time.Duration, refreshed int) {
	m.RefreshRunsTotal.WithLabelValues(status).Inc()
	m.RefreshDurationSeconds.Observe(duration.Seconds())
	if status == "success" {
		m.PodcastsRefreshedTotal.Add(float64(refreshed))
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
