// Package metrics provides Prometheus metrics for the species catalog
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector exposed at /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	speciesMutationsTotal *prometheus.CounterVec
	workflowTransitions   *prometheus.CounterVec
	editSessionsActive    prometheus.Gauge

	chatRequestsTotal   *prometheus.CounterVec
	chatRequestDuration prometheus.Histogram
}

// New creates and registers all collectors on registry
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()

	for _, c := range m.collectors() {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registry returns the registry the collectors live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) initMetrics() {
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.speciesMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "species_mutations_total",
			Help: "Total number of species create/update/delete attempts",
		},
		[]string{"operation", "outcome"}, // outcome: success, invalid, forbidden, not_found, error
	)

	m.workflowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "species_workflow_transitions_total",
			Help: "Total number of edit workflow state transitions",
		},
		[]string{"from", "to"},
	)

	m.editSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "species_edit_sessions_active",
			Help: "Number of open edit sessions",
		},
	)

	m.chatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat proxy requests",
		},
		[]string{"status"}, // status: success, error
	)

	m.chatRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_request_duration_seconds",
			Help:    "Time taken by the upstream completion API",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.speciesMutationsTotal,
		m.workflowTransitions,
		m.editSessionsActive,
		m.chatRequestsTotal,
		m.chatRequestDuration,
	}
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordMutation records a species mutation outcome
func (m *Metrics) RecordMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.speciesMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordTransition records a workflow state change
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil || from == to {
		return
	}
	m.workflowTransitions.WithLabelValues(from, to).Inc()
}

// SessionOpened increments the open session gauge
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.editSessionsActive.Inc()
}

// SessionClosed decrements the open session gauge
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.editSessionsActive.Dec()
}

// RecordChat records one chat proxy call
func (m *Metrics) RecordChat(err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.chatRequestsTotal.WithLabelValues(status).Inc()
	m.chatRequestDuration.Observe(d.Seconds())
}
