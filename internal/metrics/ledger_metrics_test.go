package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/order-manager-api/internal/metrics"
)

func TestLedgerMetrics_ContadoresIncrementan(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewLedgerMetricsWithRegisterer(registry)

	m.OrderPlaced()
	m.OrderPlaced()
	m.OrderCanceled()
	m.InsufficientStock()
	m.TxConflict()

	families, err := registry.Gather()
	require.NoError(t, err)

	got := make(map[string]float64, len(families))
	for _, mf := range families {
		got[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
	}
	assert.Equal(t, float64(2), got["order_manager_orders_placed_total"])
	assert.Equal(t, float64(1), got["order_manager_orders_canceled_total"])
	assert.Equal(t, float64(0), got["order_manager_orders_amended_total"])
	assert.Equal(t, float64(1), got["order_manager_insufficient_stock_total"])
	assert.Equal(t, float64(1), got["order_manager_tx_conflicts_total"])
}

func TestLedgerMetrics_RegistroDobleReutilizaColector(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := metrics.NewLedgerMetricsWithRegisterer(registry)
	// Un segundo registro sobre el mismo registry no debe entrar en pánico:
	// los contadores ya registrados se reutilizan.
	second := metrics.NewLedgerMetricsWithRegisterer(registry)

	first.OrderPlaced()
	second.OrderPlaced()

	count, err := testutil.GatherAndCount(registry, "order_manager_orders_placed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "order_manager_orders_placed_total" {
			assert.Equal(t, float64(2), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
