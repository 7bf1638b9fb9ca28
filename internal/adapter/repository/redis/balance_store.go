package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/minledger/internal/adapter/repository/document"
	"github.com/iho/minledger/internal/domain"
)

// DefaultKey is the key the balance document is stored under.
const DefaultKey = "minledger:balance"

// BalanceStore implements usecase.BalanceStore using Redis.
type BalanceStore struct {
	client *redis.Client
	key    string
}

// NewBalanceStore creates a new BalanceStore. An empty key uses DefaultKey.
func NewBalanceStore(client *redis.Client, key string) *BalanceStore {
	if key == "" {
		key = DefaultKey
	}
	return &BalanceStore{
		client: client,
		key:    key,
	}
}

// Load reads the balance document.
func (s *BalanceStore) Load(ctx context.Context) (*domain.BalanceRecord, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	return document.Unmarshal(data)
}

// Save writes the balance document without expiry.
func (s *BalanceStore) Save(ctx context.Context, record *domain.BalanceRecord) error {
	data, err := document.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode balance: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}

	return nil
}
