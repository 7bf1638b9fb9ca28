// Package document converts balance records to and from their JSON form:
//
//	{"balance": "1000.00", "last_updated": "2024-03-01T10:00:00Z"}
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/minledger/internal/domain"
)

// Balance is the JSON representation of a domain.BalanceRecord.
type Balance struct {
	Balance     string    `json:"balance"`
	LastUpdated time.Time `json:"last_updated"`
}

// FromDomain converts a record to its document form.
func FromDomain(rec *domain.BalanceRecord) Balance {
	return Balance{
		Balance:     domain.FormatAmount(rec.Balance),
		LastUpdated: rec.LastUpdated.UTC(),
	}
}

// ToDomain converts the document back to a record.
func (b Balance) ToDomain() (*domain.BalanceRecord, error) {
	if b.Balance == "" {
		return nil, fmt.Errorf("%w: missing balance field", domain.ErrStoreUnavailable)
	}

	balance, err := domain.ParseBalance(b.Balance)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceRecord{
		Balance:     balance,
		LastUpdated: b.LastUpdated.UTC(),
	}, nil
}

// Marshal encodes rec as indented JSON.
func Marshal(rec *domain.BalanceRecord) ([]byte, error) {
	return json.MarshalIndent(FromDomain(rec), "", "  ")
}

// Unmarshal decodes data into a record. Malformed input wraps domain.ErrStoreUnavailable.
func Unmarshal(data []byte) (*domain.BalanceRecord, error) {
	var doc Balance
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return doc.ToDomain()
}
