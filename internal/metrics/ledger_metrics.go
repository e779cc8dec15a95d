package metrics

import "github.com/prometheus/client_golang/prometheus"

// LedgerMetrics métricas Prometheus del ledger orden-stock.
type LedgerMetrics struct {
	ordersPlaced      prometheus.Counter
	ordersCanceled    prometheus.Counter
	ordersAmended     prometheus.Counter
	insufficientStock prometheus.Counter
	txConflicts       prometheus.Counter
}

// NewLedgerMetrics registra las métricas en el registerer por defecto.
func NewLedgerMetrics() *LedgerMetrics {
	return NewLedgerMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewLedgerMetricsWithRegisterer permite inyectar un registry propio (tests).
func NewLedgerMetricsWithRegisterer(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &LedgerMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "order_manager_orders_placed_total",
			Help: "Total de órdenes creadas con reserva de stock",
		}),
		ordersCanceled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "order_manager_orders_canceled_total",
			Help: "Total de órdenes canceladas con reserva liberada",
		}),
		ordersAmended: registerCounter(registerer, prometheus.CounterOpts{
			Name: "order_manager_orders_amended_total",
			Help: "Total de órdenes modificadas",
		}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "order_manager_insufficient_stock_total",
			Help: "Total de operaciones rechazadas por stock insuficiente",
		}),
		txConflicts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "order_manager_tx_conflicts_total",
			Help: "Total de conflictos de serialización/deadlock reportados al caller",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return collector
}

// OrderPlaced incrementa el contador de órdenes creadas.
func (m *LedgerMetrics) OrderPlaced() { m.ordersPlaced.Inc() }

// OrderCanceled incrementa el contador de órdenes canceladas.
func (m *LedgerMetrics) OrderCanceled() { m.ordersCanceled.Inc() }

// OrderAmended incrementa el contador de órdenes modificadas.
func (m *LedgerMetrics) OrderAmended() { m.ordersAmended.Inc() }

// InsufficientStock incrementa el contador de rechazos por stock insuficiente.
func (m *LedgerMetrics) InsufficientStock() { m.insufficientStock.Inc() }

// TxConflict incrementa el contador de conflictos transitorios de transacción.
func (m *LedgerMetrics) TxConflict() { m.txConflicts.Inc() }
