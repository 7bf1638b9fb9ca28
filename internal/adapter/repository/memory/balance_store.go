package memory

import (
	"context"
	"sync"

	"github.com/iho/minledger/internal/domain"
)

// BalanceStore implements usecase.BalanceStore in process memory.
type BalanceStore struct {
	mu     sync.RWMutex
	record *domain.BalanceRecord
}

// NewBalanceStore creates an empty BalanceStore.
func NewBalanceStore() *BalanceStore {
	return &BalanceStore{}
}

func (s *BalanceStore) Load(ctx context.Context) (*domain.BalanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.record == nil {
		return nil, domain.ErrBalanceNotFound
	}
	rec := *s.record
	return &rec, nil
}

func (s *BalanceStore) Save(ctx context.Context, record *domain.BalanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *record
	s.record = &rec
	return nil
}
