package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/adapter/http/dto"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	Inquire(ctx context.Context) decimal.Decimal
}

// BalanceHandler serves the current ledger balance.
type BalanceHandler struct {
	ledger BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(ledger BalanceService) *BalanceHandler {
	return &BalanceHandler{ledger: ledger}
}

// Get returns the current balance.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(h.ledger.Inquire(r.Context())))
}
