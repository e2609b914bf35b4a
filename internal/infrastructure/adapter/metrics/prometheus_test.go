package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
)

func TestPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPrometheusMetrics("ledger")
	require.NoError(t, m.Register(registry))

	m.SagaStep("event", "initiate", "INITIATED")
	m.SagaStep("event", "initiate", "INITIATED")
	m.EventDispatched("account-payment-events", "published")
	m.EventPublished("success", "accepted")
	m.RemoteCall("account", "success", 25*coreport.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sagaSteps.WithLabelValues("event", "initiate", "INITIATED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventDispatched.WithLabelValues("account-payment-events", "published")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventPublished.WithLabelValues("success", "accepted")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.remoteCalls))
}

func TestPrometheusMetrics_RegisterTwice(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, NewPrometheusMetrics("ledger").Register(registry))
	assert.Error(t, NewPrometheusMetrics("ledger").Register(registry))
}
