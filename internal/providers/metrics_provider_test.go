package providers

import (
	"testing"
	"time"

	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: false}}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncAnalyses(OutcomeComplete)
	m.ObserveReposFetched(3)
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_CountsAnalyses(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}
	m := NewMetricsProvider(conf)
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok, "should return MetricsProvider when enabled")

	m.IncAnalyses(OutcomeComplete)
	m.IncAnalyses(OutcomePartial)
	m.IncAnalyses(OutcomePartial)
	m.IncRequestsTotal("GET /analysis/{id}", 404)
	m.ObserveRequestDuration("GET /analysis/{id}", 5*time.Millisecond)
	m.ObserveReposFetched(120)
	m.ObservePersistenceDuration(10 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(mp.analysesTotal.WithLabelValues(OutcomeComplete)))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.analysesTotal.WithLabelValues(OutcomePartial)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.requestsTotal.WithLabelValues("GET /analysis/{id}", "4xx")))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
