package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/iho/minledger/internal/adapter/repository/document"
	"github.com/iho/minledger/internal/domain"
)

// FileMode is the permission used for the balance file.
const FileMode fs.FileMode = 0o644

// BalanceStore implements usecase.BalanceStore on a single JSON file.
type BalanceStore struct {
	mu   sync.Mutex
	path string
}

// NewBalanceStore creates a store backed by path. The file is created on first Save.
func NewBalanceStore(path string) *BalanceStore {
	return &BalanceStore{path: path}
}

// Path returns the backing file path.
func (s *BalanceStore) Path() string {
	return s.path
}

// Load reads the balance file. A missing or empty file yields domain.ErrBalanceNotFound.
func (s *BalanceStore) Load(ctx context.Context) (*domain.BalanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	if len(data) == 0 {
		return nil, domain.ErrBalanceNotFound
	}

	return document.Unmarshal(data)
}

// Save replaces the balance file atomically: the document is written to a
// temporary file in the same directory, synced, then renamed over the target.
func (s *BalanceStore) Save(ctx context.Context, record *domain.BalanceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := document.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode balance: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, FileMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace balance file: %w", err)
	}

	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write balance file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync balance file: %w", err)
	}
	return f.Close()
}
