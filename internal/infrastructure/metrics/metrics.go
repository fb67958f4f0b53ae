// Package metrics exposes lookup, cache, and batch counters for Prometheus
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/macrolens/nutrilookup/internal/domain"
)

// Recorder implements domain.LookupObserver on its own registry
type Recorder struct {
	registry *prometheus.Registry

	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	cacheWrites    *prometheus.CounterVec
	batchSize      prometheus.Histogram
}

// NewRecorder creates a recorder with a fresh registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,

		lookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrilookup_lookups_total",
				Help: "Total number of food lookups by outcome",
			},
			[]string{"outcome"},
		),
		lookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nutrilookup_lookup_duration_seconds",
				Help:    "Food lookup duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"outcome"},
		),
		cacheWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrilookup_cache_writes_total",
				Help: "Total number of cache write-throughs by result",
			},
			[]string{"result"},
		),
		batchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nutrilookup_batch_items",
				Help:    "Number of food names per batch",
				Buckets: []float64{1, 2, 5, 10, 20, 50},
			},
		),
	}
}

// ObserveLookup records the outcome and duration of one resolution
func (r *Recorder) ObserveLookup(kind domain.ResultKind, seconds float64) {
	r.lookupsTotal.WithLabelValues(string(kind)).Inc()
	r.lookupDuration.WithLabelValues(string(kind)).Observe(seconds)
}

// ObserveCacheWrite records a write-through attempt
func (r *Recorder) ObserveCacheWrite(err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	r.cacheWrites.WithLabelValues(result).Inc()
}

// ObserveBatch records the size of a dispatched batch
func (r *Recorder) ObserveBatch(items int) {
	r.batchSize.Observe(float64(items))
}

// Handler returns the HTTP handler serving the registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
