package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/module"
)

type CacheCollector struct {
	entries   *prometheus.GaugeVec
	hits      *prometheus.CounterVec
	notFounds *prometheus.CounterVec
	misses    *prometheus.CounterVec
}

var _ module.CacheMetrics = (*CacheCollector)(nil)

func NewCacheCollector(chain flow.ChainID, registerer prometheus.Registerer) *CacheCollector {
	cm := &CacheCollector{
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "entries_total",
			Namespace:   namespaceStorage,
			Subsystem:   subsystemCache,
			Help:        "the number of entries in the cache",
			ConstLabels: prometheus.Labels{LabelChain: chain.String()},
		}, []string{LabelResource}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hits_total",
			Namespace:   namespaceStorage,
			Subsystem:   subsystemCache,
			Help:        "the number of hits for the cache",
			ConstLabels: prometheus.Labels{LabelChain: chain.String()},
		}, []string{LabelResource}),
		notFounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notfounds_total",
			Namespace:   namespaceStorage,
			Subsystem:   subsystemCache,
			Help:        "the number of times the queried item was not found in either cache or database",
			ConstLabels: prometheus.Labels{LabelChain: chain.String()},
		}, []string{LabelResource}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "misses_total",
			Namespace:   namespaceStorage,
			Subsystem:   subsystemCache,
			Help:        "the number of times the queried item was not found in the cache but found in the database",
			ConstLabels: prometheus.Labels{LabelChain: chain.String()},
		}, []string{LabelResource}),
	}

	registerer.MustRegister(cm.entries, cm.hits, cm.notFounds, cm.misses)

	return cm
}

// CacheEntries records the number of entries held by the cache of a resource.
func (cc *CacheCollector) CacheEntries(resource string, entries uint) {
	cc.entries.With(prometheus.Labels{LabelResource: resource}).Set(float64(entries))
}

// CacheHit records a cache hit for a resource.
func (cc *CacheCollector) CacheHit(resource string) {
	cc.hits.With(prometheus.Labels{LabelResource: resource}).Inc()
}

// CacheNotFound records the number of times the queried item was not found in either cache
// or database.
func (cc *CacheCollector) CacheNotFound(resource string) {
	cc.notFounds.With(prometheus.Labels{LabelResource: resource}).Inc()
}

// CacheMiss records the number of times the queried item was not found in the cache
// but found in the database.
func (cc *CacheCollector) CacheMiss(resource string) {
	cc.misses.With(prometheus.Labels{LabelResource: resource}).Inc()
}
