package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/domain"
)

// BalanceResponse represents the ledger balance in API responses.
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// BalanceFromDomain converts a balance to its response form.
func BalanceFromDomain(balance decimal.Decimal) *BalanceResponse {
	return &BalanceResponse{Balance: domain.FormatAmount(balance)}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
