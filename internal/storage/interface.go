package storage

import (
	"context"
	"time"
)

// Store persists the set of tracked currency codes. Only the codes are stored,
// values are always recomputed from the catalog.
type Store interface {
	ListAll(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, code string) error
	Delete(ctx context.Context, code string) error
	Close() error
}

type StoreOptions struct {
	Key        string
	DefaultTTL time.Duration // 0 keeps the set forever
}

func DefaultStoreOptions() *StoreOptions {
	return &StoreOptions{
		Key: trackedKey,
	}
}
