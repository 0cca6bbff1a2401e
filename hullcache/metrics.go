package hullcache

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the cache collectors.
type Metrics struct {
	Hits         prometheus.Counter
	Misses       prometheus.Counter
	Computations prometheus.Counter
	Duration     prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phasehull",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Diagram lookups served from the cache",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phasehull",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Diagram lookups that were not cached",
		}),
		Computations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phasehull",
			Subsystem: "cache",
			Name:      "computations_total",
			Help:      "Diagrams computed (misses shared through singleflight count once)",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "phasehull",
			Subsystem: "cache",
			Name:      "compute_seconds",
			Help:      "Wall time of stability.Compute",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}

func (m *Metrics) register(reg prometheus.Registerer, size func() float64) error {
	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "phasehull",
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Diagrams currently cached",
	}, size)
	for _, c := range []prometheus.Collector{m.Hits, m.Misses, m.Computations, m.Duration, entries} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
