package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records counters for the collection service.
type APIMetrics struct {
	lookupRequests *prometheus.CounterVec
	deckImports    *prometheus.CounterVec
	priceUpdates   prometheus.Counter
}

// NewAPIMetrics registers the service counters on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	lookupRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cardkeeper_lookup_requests_total",
		Help: "Outbound card lookup calls by outcome.",
	}, []string{"outcome"})
	deckImports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cardkeeper_deck_imports_total",
		Help: "Deck import attempts by outcome.",
	}, []string{"outcome"})
	priceUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cardkeeper_price_updates_total",
		Help: "Cards whose prices were refreshed.",
	})
	reg.MustRegister(lookupRequests, deckImports, priceUpdates)
	return &APIMetrics{
		lookupRequests: lookupRequests,
		deckImports:    deckImports,
		priceUpdates:   priceUpdates,
	}
}

// IncLookup counts one outbound lookup call with the given outcome.
func (m *APIMetrics) IncLookup(outcome string) {
	if m == nil || m.lookupRequests == nil {
		return
	}
	m.lookupRequests.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncDeckImport counts one deck import attempt with the given outcome.
func (m *APIMetrics) IncDeckImport(outcome string) {
	if m == nil || m.deckImports == nil {
		return
	}
	m.deckImports.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// AddPriceUpdates counts refreshed cards.
func (m *APIMetrics) AddPriceUpdates(n int) {
	if m == nil || m.priceUpdates == nil || n <= 0 {
		return
	}
	m.priceUpdates.Add(float64(n))
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
