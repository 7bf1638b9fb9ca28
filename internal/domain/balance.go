package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRecord is the persisted form of the ledger balance.
type BalanceRecord struct {
	Balance     decimal.Decimal
	LastUpdated time.Time
}

// NewBalanceRecord creates a record for balance stamped at now.
func NewBalanceRecord(balance decimal.Decimal, now time.Time) *BalanceRecord {
	return &BalanceRecord{
		Balance:     Round(balance),
		LastUpdated: now.UTC(),
	}
}

// Validate reports whether the record holds a usable balance.
// Balances above MaxAmount are accepted since credits are not capped.
func (r *BalanceRecord) Validate() error {
	if r == nil {
		return ErrBalanceNotFound
	}
	if r.Balance.IsNegative() {
		return fmt.Errorf("%w: negative balance", ErrStoreUnavailable)
	}
	if _, ok := reduce(r.Balance, MaxBalanceDigits); !ok {
		return fmt.Errorf("%w: balance exceeds %d integer digits", ErrStoreUnavailable, MaxBalanceDigits)
	}
	return nil
}

// ParseBalance parses a stored balance string.
func ParseBalance(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed balance %q", ErrStoreUnavailable, s)
	}

	d, ok := reduce(d, MaxBalanceDigits)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: balance %q exceeds %d integer digits", ErrStoreUnavailable, s, MaxBalanceDigits)
	}
	return Round(d), nil
}
