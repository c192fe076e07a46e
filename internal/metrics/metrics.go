package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillmatch"

// Fill outcomes.
const (
	OutcomeFilled        = "filled"
	OutcomeAlreadyFilled = "already_filled"
	OutcomeNotFound      = "not_found"
	OutcomeRejected      = "rejected"
	OutcomeError         = "error"
)

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	Registry *prometheus.Registry

	fills        *prometheus.CounterVec
	rankDuration *prometheus.SummaryVec
	cacheLookups *prometheus.CounterVec
	httpDuration *prometheus.SummaryVec
	httpRequests *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		fills: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_fill_attempts_total",
			Help:      "Job fill attempts by outcome",
		}, []string{"outcome"}),
		rankDuration: f.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Time spent ranking jobs or candidates",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		}, []string{"kind"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_cache_lookups_total",
			Help:      "Score cache lookups by result",
		}, []string{"result"}),
		httpDuration: f.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		}, []string{"method", "path", "status_code"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
	}
}

func (m *Metrics) ObserveFill(outcome string) {
	if m == nil {
		return
	}
	m.fills.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRanking(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.rankDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) ObserveCache(hits, misses int) {
	if m == nil {
		return
	}
	if hits > 0 {
		m.cacheLookups.WithLabelValues("hit").Add(float64(hits))
	}
	if misses > 0 {
		m.cacheLookups.WithLabelValues("miss").Add(float64(misses))
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	m.httpRequests.WithLabelValues(method, path, status).Inc()
}
