package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, options ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("tcp://"+mr.Addr()+"/0", options...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_InsertListDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Insert(ctx, "usd"))
	require.NoError(t, store.Insert(ctx, "EUR"))
	require.NoError(t, store.Insert(ctx, "EUR"))

	codes, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "USD"}, codes)

	members, err := mr.Members(trackedKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"EUR", "USD"}, members)

	require.NoError(t, store.Delete(ctx, "USD"))
	codes, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR"}, codes)
}

func TestRedisStore_EmptyList(t *testing.T) {
	store, _ := newTestRedisStore(t)

	codes, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestRedisStore_DeleteMissing(t *testing.T) {
	store, _ := newTestRedisStore(t)
	assert.Error(t, store.Delete(context.Background(), "GBP"))
}

func TestRedisStore_CustomKeyAndTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t,
		WithRedisOptions(&StoreOptions{Key: "app:codes", DefaultTTL: time.Hour}),
	)

	require.NoError(t, store.Insert(ctx, "JPY"))
	assert.True(t, mr.Exists("app:codes"))
	assert.False(t, mr.Exists(trackedKey))
	assert.Equal(t, time.Hour, mr.TTL("app:codes"))
}

func TestNewRedisStore_BadAddress(t *testing.T) {
	_, err := NewRedisStore("tcp://127.0.0.1:6379/notanumber")
	assert.Error(t, err)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore("tcp://" + addr)
	assert.Error(t, err)
}
