package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	chartsComputed *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	activations    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		chartsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotish_charts_computed_total",
				Help: "Total number of charts computed, by kind",
			},
			[]string{"kind"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotish_cache_lookups_total",
				Help: "Cache lookups by view and outcome",
			},
			[]string{"view", "hit"},
		),
		activations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotish_activations_total",
				Help: "Transit activations emitted, by kind",
			},
			[]string{"kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jyotish_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jyotish_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordChartComputed records one chart build.
func (r *Recorder) RecordChartComputed(kind string) {
	r.chartsComputed.WithLabelValues(kind).Inc()
}

// RecordCache records a cache lookup outcome for a view.
func (r *Recorder) RecordCache(view string, hit bool) {
	r.cacheLookups.WithLabelValues(view, strconv.FormatBool(hit)).Inc()
}

// RecordActivations records a batch of emitted activations.
func (r *Recorder) RecordActivations(kind string, n int) {
	r.activations.WithLabelValues(kind).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
