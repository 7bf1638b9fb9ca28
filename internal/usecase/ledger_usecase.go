package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/minledger/internal/domain"
	"github.com/iho/minledger/internal/infrastructure/idgen"
)

// ErrUnsupportedOperation is returned by Execute for operations the engine does not handle.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// LedgerUseCase holds the single account balance and applies credits and debits to it.
type LedgerUseCase struct {
	mu      sync.Mutex
	balance decimal.Decimal

	store   BalanceStore
	idGen   IDGenerator
	metrics MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time
}

// LedgerConfig holds the collaborators of a LedgerUseCase.
type LedgerConfig struct {
	Store   BalanceStore // optional; nil keeps the balance in memory only
	IDGen   IDGenerator  // optional; defaults to ULIDs
	Metrics MetricsRecorder
	Logger  zerolog.Logger
	Clock   func() time.Time
}

// NewLedgerUseCase creates a LedgerUseCase and loads the stored balance once.
// A missing or unreadable store falls back to the default balance.
func NewLedgerUseCase(ctx context.Context, cfg LedgerConfig) *LedgerUseCase {
	if cfg.IDGen == nil {
		cfg.IDGen = idgen.NewULIDGenerator()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NopMetrics{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	uc := &LedgerUseCase{
		balance: domain.DefaultBalance(),
		store:   cfg.Store,
		idGen:   cfg.IDGen,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		now:     cfg.Clock,
	}

	uc.load(ctx)
	uc.metrics.SetBalance(uc.balance)

	return uc
}

func (uc *LedgerUseCase) load(ctx context.Context) {
	if uc.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	record, err := uc.store.Load(ctx)
	if err == nil {
		err = record.Validate()
	}

	switch {
	case err == nil:
		uc.balance = domain.Round(record.Balance)
		uc.logger.Info().
			Str("balance", domain.FormatAmount(uc.balance)).
			Time("last_updated", record.LastUpdated).
			Msg("loaded stored balance")
	case errors.Is(err, domain.ErrBalanceNotFound):
		uc.logger.Info().
			Str("balance", domain.FormatAmount(uc.balance)).
			Msg("no stored balance, starting from default")
	default:
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		uc.metrics.RecordStoreError("load")
		uc.logger.Warn().Err(err).
			Str("balance", domain.FormatAmount(uc.balance)).
			Msg("could not load stored balance, using default")
	}
}

// Inquire returns the current balance.
func (uc *LedgerUseCase) Inquire(ctx context.Context) decimal.Decimal {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.metrics.RecordOperation(domain.OperationInquire, OutcomeSuccess)
	return uc.balance
}

// Credit validates amount and adds it to the balance.
// The resulting balance is not capped at domain.MaxAmount.
func (uc *LedgerUseCase) Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	amount, err := domain.ValidateAmount(amount)
	if err != nil {
		uc.metrics.RecordOperation(domain.OperationCredit, Outcome(err))
		return decimal.Zero, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	opID := uc.idGen.Generate()
	uc.balance = domain.Round(uc.balance.Add(amount))

	uc.logger.Debug().
		Str("operation_id", opID).
		Str("amount", domain.FormatAmount(amount)).
		Str("balance", domain.FormatAmount(uc.balance)).
		Msg("amount credited")

	uc.persist(ctx, opID)
	uc.record(domain.OperationCredit, amount)

	return uc.balance, nil
}

// Debit validates amount and subtracts it from the balance when funds suffice.
// On domain.ErrInsufficientFunds the balance is left untouched.
func (uc *LedgerUseCase) Debit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	amount, err := domain.ValidateAmount(amount)
	if err != nil {
		uc.metrics.RecordOperation(domain.OperationDebit, Outcome(err))
		return decimal.Zero, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.balance.LessThan(amount) {
		uc.metrics.RecordOperation(domain.OperationDebit, OutcomeInsufficientFunds)
		uc.logger.Info().
			Str("amount", domain.FormatAmount(amount)).
			Str("balance", domain.FormatAmount(uc.balance)).
			Msg("debit rejected: insufficient funds")
		return decimal.Zero, fmt.Errorf("%w: balance %s, requested %s",
			domain.ErrInsufficientFunds, domain.FormatAmount(uc.balance), domain.FormatAmount(amount))
	}

	opID := uc.idGen.Generate()
	uc.balance = domain.Round(uc.balance.Sub(amount))

	uc.logger.Debug().
		Str("operation_id", opID).
		Str("amount", domain.FormatAmount(amount)).
		Str("balance", domain.FormatAmount(uc.balance)).
		Msg("amount debited")

	uc.persist(ctx, opID)
	uc.record(domain.OperationDebit, amount)

	return uc.balance, nil
}

// Execute dispatches cmd to Inquire, Credit or Debit.
func (uc *LedgerUseCase) Execute(ctx context.Context, cmd domain.Command) (decimal.Decimal, error) {
	switch cmd.Operation {
	case domain.OperationInquire:
		return uc.Inquire(ctx), nil
	case domain.OperationCredit:
		return uc.Credit(ctx, cmd.Amount)
	case domain.OperationDebit:
		return uc.Debit(ctx, cmd.Amount)
	default:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedOperation, cmd.Operation)
	}
}

// persist saves the balance. Failures are logged and the in-memory state is kept.
// Must be called with uc.mu held.
func (uc *LedgerUseCase) persist(ctx context.Context, opID string) {
	if uc.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	if err := uc.store.Save(ctx, domain.NewBalanceRecord(uc.balance, uc.now())); err != nil {
		uc.metrics.RecordStoreError("save")
		uc.logger.Error().Err(err).
			Str("operation_id", opID).
			Str("balance", domain.FormatAmount(uc.balance)).
			Msg("failed to persist balance, keeping in-memory state")
	}
}

func (uc *LedgerUseCase) record(op domain.Operation, amount decimal.Decimal) {
	uc.metrics.RecordOperation(op, OutcomeSuccess)
	uc.metrics.ObserveAmount(op, amount)
	uc.metrics.SetBalance(uc.balance)
}
