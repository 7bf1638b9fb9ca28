// Package console implements the interactive menu in front of the ledger.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/domain"
)

// LedgerService defines the behavior needed by Shell.
type LedgerService interface {
	Inquire(ctx context.Context) decimal.Decimal
	Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

// errInputClosed signals that the input stream ended mid-dialog.
var errInputClosed = errors.New("input closed")

// Shell runs the menu loop: it prompts for a choice, reads amounts until they
// validate, and prints the outcome of each ledger operation.
type Shell struct {
	ledger LedgerService
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger

	lines <-chan string
}

// NewShell creates a Shell reading from in and writing to out.
func NewShell(ledger LedgerService, in io.Reader, out io.Writer, logger zerolog.Logger) *Shell {
	return &Shell{
		ledger: ledger,
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Run loops until the user exits, input ends or ctx is canceled.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = readLines(ctx, s.in)

	for {
		s.displayMenu()

		line, err := s.readLine(ctx, choicePrompt)
		if err != nil {
			return s.finish(err)
		}

		op, err := domain.ParseMenuChoice(line)
		if err != nil {
			s.println(msgInvalidChoice)
			continue
		}

		if op == domain.OperationExit {
			s.println(msgGoodbye)
			return nil
		}

		if err := s.process(ctx, op); err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) finish(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.println("")
		s.println(msgInterrupted)
		return nil
	case errors.Is(err, errInputClosed):
		s.println("")
		s.println(msgGoodbye)
		return nil
	default:
		return err
	}
}

func (s *Shell) process(ctx context.Context, op domain.Operation) error {
	switch op {
	case domain.OperationInquire:
		s.println(BalanceLine(op, s.ledger.Inquire(ctx)))
		return nil

	case domain.OperationCredit, domain.OperationDebit:
		prompt := creditPrompt
		apply := s.ledger.Credit
		if op == domain.OperationDebit {
			prompt = debitPrompt
			apply = s.ledger.Debit
		}

		amount, err := s.readAmount(ctx, prompt)
		if err != nil {
			return err
		}

		balance, err := apply(ctx, amount)
		if err != nil {
			if !errors.Is(err, domain.ErrInsufficientFunds) {
				s.logger.Error().Err(err).Str("operation", op.String()).Msg("ledger operation failed")
			}
			s.println(DescribeError(err))
			return nil
		}

		s.println(BalanceLine(op, balance))
		return nil

	default:
		s.println(msgInvalidChoice)
		return nil
	}
}

// readAmount prompts until the input parses as a valid amount.
func (s *Shell) readAmount(ctx context.Context, prompt string) (decimal.Decimal, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return decimal.Zero, err
		}

		amount, err := domain.ParseAmount(line)
		if err != nil {
			s.println(DescribeError(err))
			continue
		}

		return amount, nil
	}
}

func (s *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", errInputClosed
		}
		return line, nil
	}
}

func (s *Shell) displayMenu() {
	s.println(menuSeparator)
	s.println(menuTitle)
	for _, item := range menuItems {
		s.println(item)
	}
	s.println(menuSeparator)
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

// readLines feeds lines from r into the returned channel until r is
// exhausted. Once ctx is canceled no further lines are delivered, but the
// goroutine stays blocked in the pending read until r returns.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines
}
