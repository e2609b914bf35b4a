package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

// PrometheusMetrics implements core.Metrics with Prometheus collectors
type PrometheusMetrics struct {
	sagaSteps       *prometheus.CounterVec
	eventDispatched *prometheus.CounterVec
	eventPublished  *prometheus.CounterVec
	remoteCalls     *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors under namespace
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	return &PrometheusMetrics{
		sagaSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "saga_steps_total",
				Help:      "Total number of saga steps per path, step and outcome",
			},
			[]string{"path", "step", "outcome"},
		),
		eventDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_dispatched_total",
				Help:      "Total number of inbound events per topic and result",
			},
			[]string{"topic", "result"},
		),
		eventPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total number of outbound events per destination and result",
			},
			[]string{"destination", "result"},
		),
		remoteCalls: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_call_duration_seconds",
				Help:      "Latency of calls to the account and payment services",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "result"},
		),
	}
}

// Register registers all collectors with registry
func (m *PrometheusMetrics) Register(registry prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		m.sagaSteps,
		m.eventDispatched,
		m.eventPublished,
		m.remoteCalls,
	} {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (m *PrometheusMetrics) SagaStep(path, step, outcome string) {
	m.sagaSteps.WithLabelValues(path, step, outcome).Inc()
}

func (m *PrometheusMetrics) EventDispatched(topic, result string) {
	m.eventDispatched.WithLabelValues(topic, result).Inc()
}

func (m *PrometheusMetrics) EventPublished(destination, result string) {
	m.eventPublished.WithLabelValues(destination, result).Inc()
}

func (m *PrometheusMetrics) RemoteCall(service, result string, elapsed coreport.Duration) {
	m.remoteCalls.WithLabelValues(service, result).Observe(elapsed.Std().Seconds())
}

// NoopMetrics discards every observation
type NoopMetrics struct{}

// NewNoopMetrics creates a metrics sink that records nothing
func NewNoopMetrics() coreport.Metrics {
	return NoopMetrics{}
}

func (NoopMetrics) SagaStep(string, string, string)              {}
func (NoopMetrics) EventDispatched(string, string)               {}
func (NoopMetrics) EventPublished(string, string)                {}
func (NoopMetrics) RemoteCall(string, string, coreport.Duration) {}
