package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/minledger/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

var (
	loadPattern = regexp.QuoteMeta(loadBalanceQuery)
	savePattern = regexp.QuoteMeta(saveBalanceQuery)
)

func TestBalanceStoreLoad(t *testing.T) {
	pool := newMockPool(t)
	updated := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	pool.ExpectQuery(loadPattern).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "last_updated"}).AddRow("950.25", updated))

	store := newBalanceStoreWithDB(pool, newFastRetrier())
	rec, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "950.25", domain.FormatAmount(rec.Balance))
	assert.True(t, rec.LastUpdated.Equal(updated))
	assertExpectations(t, pool)
}

func TestBalanceStoreLoadEmpty(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery(loadPattern).WillReturnError(pgx.ErrNoRows)

	store := newBalanceStoreWithDB(pool, newFastRetrier())
	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrBalanceNotFound)
	assertExpectations(t, pool)
}

func TestBalanceStoreLoadMalformed(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery(loadPattern).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "last_updated"}).AddRow("NaN", time.Now()))

	store := newBalanceStoreWithDB(pool, newFastRetrier())
	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestBalanceStoreLoadRetriesDeadlock(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery(loadPattern).WillReturnError(&pgconn.PgError{Code: pgErrDeadlock})
	pool.ExpectQuery(loadPattern).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "last_updated"}).AddRow("10.00", time.Now()))

	store := newBalanceStoreWithDB(pool, newFastRetrier())
	rec, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, rec.Balance.Equal(decimal.NewFromInt(10)))
	assertExpectations(t, pool)
}

func TestBalanceStoreSave(t *testing.T) {
	pool := newMockPool(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	pool.ExpectExec(savePattern).
		WithArgs("1250.75", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := newBalanceStoreWithDB(pool, newFastRetrier())
	err := store.Save(context.Background(), domain.NewBalanceRecord(decimal.RequireFromString("1250.75"), now))

	require.NoError(t, err)
	assertExpectations(t, pool)
}

func TestBalanceStoreSaveError(t *testing.T) {
	pool := newMockPool(t)
	dbErr := errors.New("connection reset")
	pool.ExpectExec(savePattern).WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).WillReturnError(dbErr)

	store := newBalanceStoreWithDB(pool, newFastRetrier())
	err := store.Save(context.Background(), domain.NewBalanceRecord(decimal.NewFromInt(1), time.Now()))

	assert.ErrorIs(t, err, dbErr)
	assertExpectations(t, pool)
}
