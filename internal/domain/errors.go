package domain

import "errors"

var (
	// Amount errors
	ErrInvalidFormat        = errors.New("invalid amount format")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrAmountExceedsMaximum = errors.New("amount exceeds maximum limit")

	// Balance errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Store errors
	ErrBalanceNotFound  = errors.New("balance not found")
	ErrStoreUnavailable = errors.New("balance store unavailable")

	// Menu errors
	ErrInvalidChoice = errors.New("invalid menu choice")
)
