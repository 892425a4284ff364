// Package metrics exposes Prometheus instrumentation for the feature
// pipeline and the event matcher.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries every collector on a private registry, so tests and
// multiple instances never trip duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	DatesAggregated     prometheus.Counter
	AggregationFailures prometheus.Counter
	AnomalousDays       prometheus.Counter
	TrueAnomalies       prometheus.Counter

	EventsEvaluated *prometheus.CounterVec
	AlertsGenerated *prometheus.CounterVec

	StoreErrors      prometheus.Counter
	PipelineDuration prometheus.Histogram
}

// New builds the collector set on a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.DatesAggregated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "dates_aggregated_total",
		Help:      "Dates successfully aggregated into feature sets.",
	})
	m.AggregationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "aggregation_failures_total",
		Help:      "Dates that failed aggregation due to malformed input.",
	})
	m.AnomalousDays = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "anomalous_days_total",
		Help:      "Days with at least one anomalous dimension.",
	})
	m.TrueAnomalies = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "true_anomalies_total",
		Help:      "Days confirmed anomalous by the multidimensional rule.",
	})

	m.EventsEvaluated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "events_evaluated_total",
		Help:      "Detected events evaluated, by event type.",
	}, []string{"event_type"})
	m.AlertsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "alerts_generated_total",
		Help:      "Business alerts generated, by event type and severity.",
	}, []string{"event_type", "severity"})

	m.StoreErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "retailpulse",
		Name:      "store_errors_total",
		Help:      "Feature store operations that returned an error.",
	})
	m.PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "retailpulse",
		Name:      "pipeline_duration_seconds",
		Help:      "Wall-clock duration of full pipeline runs.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	m.registry.MustRegister(
		m.DatesAggregated,
		m.AggregationFailures,
		m.AnomalousDays,
		m.TrueAnomalies,
		m.EventsEvaluated,
		m.AlertsGenerated,
		m.StoreErrors,
		m.PipelineDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
