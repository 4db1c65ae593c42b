package worker

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRun("success", 2*time.Second, 7)
	m.RecordRun("failure", time.Second, 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RefreshRunsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RefreshRunsTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.PodcastsRefreshedTotal))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccessTimestamp), float64(0))
}

func TestMetrics_FailureDoesNotTouchSuccessGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRun("failure", time.Second, 3)

	assert.Equal(t, float64(0), testutil.ToFloat64(m.PodcastsRefreshedTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.LastSuccessTimestamp))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
