package usecase

import (
	"errors"
	"time"

	"github.com/iho/minledger/internal/domain"
)

const (
	// DefaultStoreTimeout bounds a single load or save against the balance store.
	DefaultStoreTimeout = 5 * time.Second
)

// Operation outcomes reported to the metrics recorder.
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidFormat     = "invalid_format"
	OutcomeNegativeAmount    = "negative_amount"
	OutcomeExceedsMaximum    = "exceeds_maximum"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeError             = "error"
)

// Outcome classifies an operation error into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrInvalidFormat):
		return OutcomeInvalidFormat
	case errors.Is(err, domain.ErrNegativeAmount):
		return OutcomeNegativeAmount
	case errors.Is(err, domain.ErrAmountExceedsMaximum):
		return OutcomeExceedsMaximum
	case errors.Is(err, domain.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	default:
		return OutcomeError
	}
}
