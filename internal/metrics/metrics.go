// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yolksters"

// Outcome labels for reconciled rows.
const (
	OutcomeUpdated  = "updated"
	OutcomeInserted = "inserted"
)

// Metrics groups the collectors on a private registry so tests can create
// as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests       *prometheus.CounterVec
	RPCDuration       *prometheus.HistogramVec
	IngredientsParsed *prometheus.CounterVec
	ReconcileRows     *prometheus.CounterVec
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		IngredientsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredients_parsed_total",
			Help:      "Ingredient lines parsed, by resolved category.",
		}, []string{"category"}),
		ReconcileRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_rows_total",
			Help:      "Shopping list rows written by reconciliation, by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.IngredientsParsed,
		m.ReconcileRows,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveParsed counts one parsed ingredient.
func (m *Metrics) ObserveParsed(category string) {
	m.IngredientsParsed.WithLabelValues(category).Inc()
}

// ObserveReconcile counts the rows one reconciliation wrote.
func (m *Metrics) ObserveReconcile(updated, inserted int) {
	m.ReconcileRows.WithLabelValues(OutcomeUpdated).Add(float64(updated))
	m.ReconcileRows.WithLabelValues(OutcomeInserted).Add(float64(inserted))
}
