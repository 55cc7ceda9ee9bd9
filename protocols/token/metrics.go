package token

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics for the resolver.
type Metrics struct {
	resolveDuration   *prometheus.HistogramVec
	tokensTotal       *prometheus.CounterVec
	symbolFallbacks   prometheus.Counter
	transportFailures *prometheus.CounterVec
}

// NewMetrics creates and registers the metrics for the resolver.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "token_resolver_resolve_duration_seconds",
			Help:    "Time taken to resolve a batch of token addresses.",
			Buckets: prometheus.DefBuckets,
		}, []string{}),
		tokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_resolver_tokens_total",
			Help: "Token addresses seen by the resolver, labeled by outcome (requested, resolved, skipped).",
		}, []string{"outcome"}),
		symbolFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "token_resolver_symbol_fallbacks_total",
			Help: "Symbol batches retried with the bytes32 encoding.",
		}),
		transportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_resolver_transport_failures_total",
			Help: "Resolutions aborted because a batch could not be executed, labeled by method.",
		}, []string{"method"}),
	}
	reg.MustRegister(m.resolveDuration, m.tokensTotal, m.symbolFallbacks, m.transportFailures)
	return m
}
