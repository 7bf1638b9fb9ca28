package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation identifies a ledger command.
type Operation int

const (
	OperationInquire Operation = iota + 1
	OperationCredit
	OperationDebit
	OperationExit
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationInquire:
		return "inquire"
	case OperationCredit:
		return "credit"
	case OperationDebit:
		return "debit"
	case OperationExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Mutates reports whether the operation changes the balance.
func (o Operation) Mutates() bool {
	return o == OperationCredit || o == OperationDebit
}

// ParseMenuChoice maps a menu selection ("1".."4") to an Operation.
func ParseMenuChoice(input string) (Operation, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrInvalidChoice
	}

	op := Operation(n)
	if op < OperationInquire || op > OperationExit {
		return 0, ErrInvalidChoice
	}

	return op, nil
}

// Command is a request to the ledger engine.
type Command struct {
	Operation Operation
	Amount    decimal.Decimal
}
