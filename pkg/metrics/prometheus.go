package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	apiCalls     *prometheus.CounterVec
	cacheEvents  *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	signals      *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		apiCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionflow_api_calls_total",
				Help: "Total number of upstream market-data API calls",
			},
			[]string{"endpoint"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionflow_cache_events_total",
				Help: "Cache lookups by cache name and outcome",
			},
			[]string{"cache", "outcome"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "optionflow_fetch_duration_seconds",
				Help:    "Duration of fetch operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		signals: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionflow_signals_total",
				Help: "Trading signals produced by type",
			},
			[]string{"type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionflow_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordAPICall records one upstream API call.
func (r *Recorder) RecordAPICall(endpoint string) {
	r.apiCalls.WithLabelValues(endpoint).Inc()
}

// RecordCacheEvent records a cache lookup outcome.
func (r *Recorder) RecordCacheEvent(cache string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheEvents.WithLabelValues(cache, outcome).Inc()
}

// RecordFetchLatency records fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(op string, seconds float64) {
	r.fetchLatency.WithLabelValues(op).Observe(seconds)
}

// RecordSignal records a produced trading signal.
func (r *Recorder) RecordSignal(signalType string) {
	r.signals.WithLabelValues(signalType).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
