// Package prometheus exposes cache statistics as Prometheus metrics.
//
// Values are read from the cache on every scrape, so the collector adds no
// work to the cache's hot path.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/ttlcache"
)

// StatsSource is the part of a cache engine the collector reads.
type StatsSource interface {
	Stats() (ttlcache.Stats, error)
	Len() (int, error)
}

// Collector implements prometheus.Collector for one cache.
type Collector struct {
	hits      prometheus.CounterFunc
	misses    prometheus.CounterFunc
	evictions prometheus.CounterFunc
	hitRate   prometheus.GaugeFunc
	entries   prometheus.GaugeFunc
}

// NewCollector creates a collector whose metric names are prefixed with
// namespace. A failing source reports zero.
func NewCollector(namespace string, src StatsSource) *Collector {
	stat := func(f func(ttlcache.Stats) float64) func() float64 {
		return func() float64 {
			s, err := src.Stats()
			if err != nil {
				return 0
			}
			return f(s)
		}
	}

	return &Collector{
		hits: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of cache hits",
		}, stat(func(s ttlcache.Stats) float64 { return float64(s.Hits) })),

		misses: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of cache misses",
		}, stat(func(s ttlcache.Stats) float64 { return float64(s.Misses) })),

		evictions: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of entries evicted for capacity or expiry",
		}, stat(func(s ttlcache.Stats) float64 { return float64(s.Evictions) })),

		hitRate: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hit_rate_percent",
			Help:      "Cache hit rate as a percentage of all reads",
		}, stat(ttlcache.Stats.HitRate)),

		entries: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Current number of stored entries, including unswept expired ones",
		}, func() float64 {
			n, err := src.Len()
			if err != nil {
				return 0
			}
			return float64(n)
		}),
	}
}

// Register creates a collector for src and registers it with reg.
func Register(reg prometheus.Registerer, namespace string, src StatsSource) (*Collector, error) {
	c := NewCollector(namespace, src)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.hits, c.misses, c.evictions, c.hitRate, c.entries}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.collectors() {
		m.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.collectors() {
		m.Collect(ch)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
