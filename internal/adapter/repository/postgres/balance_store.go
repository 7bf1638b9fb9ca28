package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/minledger/internal/domain"
)

const (
	loadBalanceQuery = `SELECT balance::text, last_updated FROM ledger_balance WHERE id = 1`

	saveBalanceQuery = `INSERT INTO ledger_balance (id, balance, last_updated)
VALUES (1, $1::numeric, $2)
ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance, last_updated = EXCLUDED.last_updated`
)

type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BalanceStore implements usecase.BalanceStore on a single-row table.
type BalanceStore struct {
	db      pgxQuerier
	retrier *Retrier
}

// NewBalanceStore creates a new BalanceStore.
func NewBalanceStore(pool *pgxpool.Pool, logger zerolog.Logger) *BalanceStore {
	return newBalanceStoreWithDB(pool, NewRetrier(logger))
}

func newBalanceStoreWithDB(db pgxQuerier, retrier *Retrier) *BalanceStore {
	return &BalanceStore{db: db, retrier: retrier}
}

// Load reads the stored balance.
func (s *BalanceStore) Load(ctx context.Context) (*domain.BalanceRecord, error) {
	var (
		raw         string
		lastUpdated time.Time
	)

	err := s.retrier.Retry(ctx, func() error {
		return s.db.QueryRow(ctx, loadBalanceQuery).Scan(&raw, &lastUpdated)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	balance, err := domain.ParseBalance(raw)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceRecord{
		Balance:     balance,
		LastUpdated: lastUpdated.UTC(),
	}, nil
}

// Save upserts the balance row.
func (s *BalanceStore) Save(ctx context.Context, record *domain.BalanceRecord) error {
	err := s.retrier.Retry(ctx, func() error {
		_, err := s.db.Exec(ctx, saveBalanceQuery, domain.FormatAmount(record.Balance), record.LastUpdated)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}

	return nil
}
