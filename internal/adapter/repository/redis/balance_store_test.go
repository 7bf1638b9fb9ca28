package redis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/minledger/internal/domain"
)

func TestBalanceStoreLoadEmpty(t *testing.T) {
	store, _ := newTestStore(t, "")
	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrBalanceNotFound)
}

func TestBalanceStoreSaveAndLoad(t *testing.T) {
	store, mr := newTestStore(t, "ledger:test")
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.NewBalanceRecord(decimal.RequireFromString("950.25"), now)))

	raw, err := mr.Get("ledger:test")
	require.NoError(t, err)
	assert.Contains(t, raw, `"balance": "950.25"`)
	assert.Equal(t, time.Duration(0), mr.TTL("ledger:test"))

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "950.25", domain.FormatAmount(rec.Balance))
	assert.True(t, rec.LastUpdated.Equal(now))
}

func TestBalanceStoreLoadCorrupt(t *testing.T) {
	store, mr := newTestStore(t, DefaultKey)
	require.NoError(t, mr.Set(DefaultKey, "garbage"))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestBalanceStoreUnavailable(t *testing.T) {
	store, mr := newTestStore(t, DefaultKey)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBalanceNotFound)

	err = store.Save(ctx, domain.NewBalanceRecord(decimal.NewFromInt(1), time.Now()))
	assert.Error(t, err)
}

func TestBalanceStoreLoadOversizedBalance(t *testing.T) {
	store, mr := newTestStore(t, DefaultKey)
	require.NoError(t, mr.Set(DefaultKey, `{"balance": "1e100000000", "last_updated": "2024-03-01T10:00:00Z"}`))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
