package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_InsertListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Insert(ctx, "usd"))
	require.NoError(t, store.Insert(ctx, "EUR"))
	require.NoError(t, store.Insert(ctx, "USD")) // duplicate is a no-op

	codes, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR"}, codes)

	require.NoError(t, store.Delete(ctx, "USD"))
	codes, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR"}, codes)
}

func TestMemoryStore_DeleteMissing(t *testing.T) {
	store := NewMemoryStore("EUR")
	err := store.Delete(context.Background(), "GBP")
	assert.Error(t, err)
}

func TestMemoryStore_InsertEmpty(t *testing.T) {
	store := NewMemoryStore()
	assert.Error(t, store.Insert(context.Background(), "  "))
}

func TestMemoryStore_ListAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("EUR", "GBP")

	codes, err := store.ListAll(ctx)
	require.NoError(t, err)
	codes[0] = "XXX"

	again, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "GBP"}, again)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Insert(ctx, "USD"), context.Canceled)
	_, err := store.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
