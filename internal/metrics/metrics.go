package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for PilotConnect
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	ProfilesCreatedTotal prometheus.Counter
	MessagesSentTotal    prometheus.Counter
	EventsCreatedTotal   prometheus.Counter
	MatchQueriesTotal    *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pilotconnect_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pilotconnect_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pilotconnect_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pilotconnect_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pilotconnect_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		ProfilesCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pilotconnect_profiles_created_total",
				Help: "Total pilot profiles created",
			},
		),
		MessagesSentTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pilotconnect_messages_sent_total",
				Help: "Total messages sent, replies included",
			},
		),
		EventsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pilotconnect_events_created_total",
				Help: "Total pilot events created",
			},
		),
		MatchQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pilotconnect_match_queries_total",
				Help: "Matching engine queries by predicate and scope",
			},
			[]string{"predicate", "scope"},
		),
	}
}

// ObserveMatch counts one matching engine query
func (m *MetricsRegistry) ObserveMatch(predicate string, scope string) {
	m.MatchQueriesTotal.WithLabelValues(predicate, scope).Inc()
}

// CacheResult counts a hit or miss for a key pattern
func (m *MetricsRegistry) CacheResult(pattern string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}
