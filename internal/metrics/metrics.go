// Package metrics exposes Prometheus collectors for the discovery
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iconick/hiddengems/internal/core"
)

// Metrics holds the pipeline collectors. All methods are safe on a nil
// receiver so instrumentation stays optional in tests.
type Metrics struct {
	Queries          *prometheus.CounterVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	AggregateSeconds prometheus.Histogram
	PoolSize         prometheus.Gauge
}

// New creates the collectors on reg. A nil reg uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hiddengems_queries_total",
				Help: "Discovery queries by mode and outcome",
			},
			[]string{"mode", "status"},
		),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "hiddengems_cache_hits_total",
			Help: "Bulk pool cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "hiddengems_cache_misses_total",
			Help: "Bulk pool cache misses",
		}),
		AggregateSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hiddengems_aggregate_duration_seconds",
			Help:    "Duration of multi-strategy pool aggregation",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20},
		}),
		PoolSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hiddengems_pool_records",
			Help: "Unique records in the last aggregated bulk pool",
		}),
	}
}

// ObserveQuery counts one discovery query.
func (m *Metrics) ObserveQuery(mode core.Mode, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Queries.WithLabelValues(string(mode), status).Inc()
}

// CacheHit counts one bulk pool cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// CacheMiss counts one bulk pool cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

// ObserveAggregate records the duration and size of one aggregation.
func (m *Metrics) ObserveAggregate(d time.Duration, records int) {
	if m == nil {
		return
	}
	m.AggregateSeconds.Observe(d.Seconds())
	m.PoolSize.Set(float64(records))
}
