// Package metrics exposes the console's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	DiscoveryCalls *prometheus.CounterVec // by kind and outcome
	UpstreamCalls  *prometheus.CounterVec // api_calls_used as reported upstream, by kind
	CacheHits      *prometheus.CounterVec // by kind
	Exports        *prometheus.CounterVec // by kind and format
	RecordsHeld    *prometheus.GaugeVec   // current in-memory collection sizes
}

// New registers the console metrics on the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DiscoveryCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "discovery_calls_total",
			Help:      "Discovery calls by kind and outcome (success, error, invalid, stale)",
		}, []string{"kind", "outcome"}),
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "upstream_api_calls_total",
			Help:      "Upstream API calls consumed, as reported by the discovery service",
		}, []string{"kind"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "discovery_cache_hits_total",
			Help:      "Discovery responses served from the in-memory cache",
		}, []string{"kind"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "exports_total",
			Help:      "Export downloads by kind and format",
		}, []string{"kind", "format"}),
		RecordsHeld: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "console",
			Name:      "records_held",
			Help:      "Records currently held in memory, by kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.DiscoveryCalls, m.UpstreamCalls, m.CacheHits, m.Exports, m.RecordsHeld)
	return m
}
