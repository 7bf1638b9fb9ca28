package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Operations      *prometheus.CounterVec
	OperationAmount *prometheus.HistogramVec
	Balance         prometheus.Gauge

	// Store metrics
	StoreErrors *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them on reg.
// A nil reg registers on prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minledger_operations_total",
				Help: "Total ledger operations by type and outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minledger_operation_amount",
				Help:    "Amounts applied by successful credits and debits",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		Balance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "minledger_balance",
			Help: "Current ledger balance",
		}),

		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minledger_store_errors_total",
				Help: "Total balance store failures by action",
			},
			[]string{"action"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordOperation implements usecase.MetricsRecorder.
func (m *Metrics) RecordOperation(op domain.Operation, outcome string) {
	m.Operations.WithLabelValues(op.String(), outcome).Inc()
}

// ObserveAmount implements usecase.MetricsRecorder.
func (m *Metrics) ObserveAmount(op domain.Operation, amount decimal.Decimal) {
	m.OperationAmount.WithLabelValues(op.String()).Observe(amount.InexactFloat64())
}

// SetBalance implements usecase.MetricsRecorder.
func (m *Metrics) SetBalance(balance decimal.Decimal) {
	m.Balance.Set(balance.InexactFloat64())
}

// RecordStoreError implements usecase.MetricsRecorder.
func (m *Metrics) RecordStoreError(action string) {
	m.StoreErrors.WithLabelValues(action).Inc()
}
