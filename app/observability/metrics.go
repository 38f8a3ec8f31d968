package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "waddle"

// Metrics groups the bot's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	interactions      *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	apiDuration       *prometheus.HistogramVec
	reminders         *prometheus.CounterVec
	events            *prometheus.CounterVec
}

// NewMetrics registers every collector on reg. Passing nil creates a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		interactions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Interactions handled, by kind, registered name and outcome.",
		}, []string{"kind", "name", "outcome"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of handler operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		apiDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Backend API request latency by client operation and HTTP status.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		}, []string{"operation", "status"}),
		reminders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_total",
			Help:      "Reminder occurrences by outcome.",
		}, []string{"outcome"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events published on the internal bus.",
		}, []string{"topic", "outcome"}),
	}
}

func (m *Metrics) RecordInteraction(kind, name, outcome string) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(kind, name, outcome).Inc()
}

func (m *Metrics) ObserveOperation(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

// ObserveAPIRequest records a backend call. status 0 means the request never got a response.
func (m *Metrics) ObserveAPIRequest(operation string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.apiDuration.WithLabelValues(operation, label).Observe(d.Seconds())
}

func (m *Metrics) RecordReminder(outcome string) {
	if m == nil {
		return
	}
	m.reminders.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordEvent(topic, outcome string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(topic, outcome).Inc()
}
