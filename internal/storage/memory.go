package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MemoryStore implements the Store interface using in-memory storage.
// Codes are listed in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	codes []string
}

// NewMemoryStore creates a new in-memory store, optionally pre-populated
func NewMemoryStore(codes ...string) *MemoryStore {
	ms := &MemoryStore{}
	for _, c := range codes {
		_ = ms.Insert(context.Background(), c)
	}
	return ms
}

func (ms *MemoryStore) ListAll(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return slices.Clone(ms.codes), nil
}

func (ms *MemoryStore) Insert(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("empty currency code")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if slices.Contains(ms.codes, code) {
		return nil
	}
	ms.codes = append(ms.codes, code)
	return nil
}

func (ms *MemoryStore) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	ms.mu.Lock()
	defer ms.mu.Unlock()
	i := slices.Index(ms.codes, code)
	if i < 0 {
		return fmt.Errorf("no such record: %s", code)
	}
	ms.codes = slices.Delete(ms.codes, i, i+1)
	return nil
}

func (ms *MemoryStore) Close() error { return nil }
