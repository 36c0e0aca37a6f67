package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
)

type Manager struct {
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterComputations       *prometheus.CounterVec
	GaugeRequests             prometheus.Gauge
	HistRequestDuration       *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("bodycomp", "test", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of incoming requests",
		}, []string{"method", "route", "status"}),
		CounterHandleRequestPanic: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handle_request_panic_total",
			Help:      "The total number of serve request panics",
		}),
		CounterComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "body_composition_computations_total",
			Help:      "Body composition derivations by outcome",
		}, []string{"outcome"}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
	}
}

// ObserveComputation counts one derivation as complete or partial.
func (m *Manager) ObserveComputation(complete bool) {
	if m == nil {
		return
	}
	outcome := OutcomePartial
	if complete {
		outcome = OutcomeComplete
	}
	m.CounterComputations.WithLabelValues(outcome).Inc()
}
