package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a ResolveIdentity call.
const (
	OutcomeResolved = "resolved"
	OutcomePartial  = "partial"
	OutcomeFailed   = "failed"
	OutcomeCached   = "cached"
)

// Metrics provides observability for identity resolution.
type Metrics struct {
	// Sub-resolver latency by source and result
	SourceLatency *prometheus.HistogramVec

	// ResolveIdentity outcomes by chain
	ResolveOutcome *prometheus.CounterVec

	ResolveLatency prometheus.Histogram

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Resolutions whose result was shared by concurrent callers of the same key
	Coalesced prometheus.Counter
}

// New registers the identity metrics on reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		SourceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nameplate_identity_source_duration_seconds",
			Help:    "Duration of identity sub-resolver calls by source",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source", "result"}), // result: "ok", "error"

		ResolveOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nameplate_identity_resolutions_total",
			Help: "Total identity resolutions by outcome and chain",
		}, []string{"outcome", "chain_id"}),

		ResolveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nameplate_identity_resolve_duration_seconds",
			Help:    "Duration of full identity resolution including cache lookups",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameplate_identity_cache_hits_total",
			Help: "Identity cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameplate_identity_cache_misses_total",
			Help: "Identity cache misses",
		}),

		Coalesced: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameplate_identity_coalesced_total",
			Help: "Resolutions whose result was shared by concurrent callers of the same key",
		}),
	}
}

// ObserveSource records one sub-resolver call.
func (m *Metrics) ObserveSource(source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SourceLatency.WithLabelValues(source, result).Observe(d.Seconds())
}

// IncrementOutcome records a resolution outcome.
func (m *Metrics) IncrementOutcome(outcome, chainID string) {
	if m != nil {
		m.ResolveOutcome.WithLabelValues(outcome, chainID).Inc()
	}
}

// ObserveResolveLatency records the total resolution duration.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) IncrementCoalesced() {
	if m != nil {
		m.Coalesced.Inc()
	}
}
