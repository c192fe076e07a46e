package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFill(t *testing.T) {
	m := New()
	m.ObserveFill(OutcomeFilled)
	m.ObserveFill(OutcomeFilled)
	m.ObserveFill(OutcomeAlreadyFilled)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fills.WithLabelValues(OutcomeFilled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fills.WithLabelValues(OutcomeAlreadyFilled)))
}

func TestObserveCache(t *testing.T) {
	m := New()
	m.ObserveCache(3, 0)
	m.ObserveCache(1, 2)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestObserveHTTPAndRanking(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/health", "200", 5*time.Millisecond)
	m.ObserveRanking("jobs", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.rankDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFill(OutcomeError)
		m.ObserveRanking("jobs", time.Second)
		m.ObserveCache(1, 1)
		m.ObserveHTTP("GET", "/", "200", time.Second)
	})
}
