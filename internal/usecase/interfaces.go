package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/domain"
)

// BalanceStore persists the ledger balance across restarts.
type BalanceStore interface {
	// Load returns the stored record, or domain.ErrBalanceNotFound when the
	// store holds nothing yet.
	Load(ctx context.Context) (*domain.BalanceRecord, error)
	Save(ctx context.Context, record *domain.BalanceRecord) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// MetricsRecorder receives ledger operation outcomes.
type MetricsRecorder interface {
	RecordOperation(op domain.Operation, outcome string)
	ObserveAmount(op domain.Operation, amount decimal.Decimal)
	SetBalance(balance decimal.Decimal)
	RecordStoreError(action string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordOperation(domain.Operation, string)         {}
func (NopMetrics) ObserveAmount(domain.Operation, decimal.Decimal) {}
func (NopMetrics) SetBalance(decimal.Decimal)                      {}
func (NopMetrics) RecordStoreError(string)                         {}
