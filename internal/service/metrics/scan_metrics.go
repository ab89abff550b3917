package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ScanLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jyotish",
			Subsystem: "scan",
			Name:      "latency_seconds",
			Help:      "Latency of transit and prediction scans",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	ScanRangeDays = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jyotish",
			Subsystem: "scan",
			Name:      "range_days",
			Help:      "Requested scan range lengths in days",
			Buckets:   []float64{30, 90, 365, 1825, 3650, 9125, 18263},
		},
		[]string{"endpoint"},
	)

	ScanErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jyotish",
			Subsystem: "scan",
			Name:      "errors_total",
			Help:      "Errors by scan endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ScanLatency, ScanRangeDays, ScanErrors)
	})
}
