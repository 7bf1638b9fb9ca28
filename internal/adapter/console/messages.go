package console

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/domain"
)

const (
	menuSeparator = "--------------------------------"
	menuTitle     = "Account Management System"

	choicePrompt = "Enter your choice (1-4): "
	creditPrompt = "Enter credit amount: "
	debitPrompt  = "Enter debit amount: "

	msgInvalidChoice     = "Invalid choice, please select 1-4."
	msgGoodbye           = "Exiting the program. Goodbye!"
	msgInterrupted       = "Program interrupted by user. Goodbye!"
	msgInsufficientFunds = "Insufficient funds for this debit."
)

var menuItems = []string{
	"1. View Balance",
	"2. Credit Account",
	"3. Debit Account",
	"4. Exit",
}

// DescribeError returns the message shown to the user for a ledger error.
func DescribeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid amount format. Please enter a valid number."
	case errors.Is(err, domain.ErrNegativeAmount):
		return "Amount cannot be negative. Please try again."
	case errors.Is(err, domain.ErrAmountExceedsMaximum):
		return fmt.Sprintf("Amount exceeds maximum limit (%s). Please try again.", domain.MaxAmount)
	case errors.Is(err, domain.ErrInsufficientFunds):
		return msgInsufficientFunds
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}

// BalanceLine formats the result of an operation.
func BalanceLine(op domain.Operation, balance decimal.Decimal) string {
	switch op {
	case domain.OperationCredit:
		return "Amount credited. New balance: " + domain.FormatAmount(balance)
	case domain.OperationDebit:
		return "Amount debited. New balance: " + domain.FormatAmount(balance)
	default:
		return "Current balance: " + domain.FormatAmount(balance)
	}
}
