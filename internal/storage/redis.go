package storage

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the Store interface using a Redis set
type RedisStore struct {
	client *redis.Client
	opts   *StoreOptions
	ctx    context.Context
}

// NewRedisStore creates a new Redis store from an address like tcp://:pass@host:6379/0
func NewRedisStore(addr string, options ...RedisOption) (*RedisStore, error) {
	opts := DefaultStoreOptions()

	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("can't parse url for redis: %w", err)
	}
	var passwd string
	if u.User != nil {
		passwd, _ = u.User.Password()
	}
	db := 0
	if 1 < len(u.Path) {
		db, err = strconv.Atoi(u.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("can't convert string into int for redis db; %s; %w", addr, err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Network:  u.Scheme,
		Addr:     u.Host,
		Password: passwd,
		DB:       db,
	})

	store := &RedisStore{
		client: client,
		opts:   opts,
		ctx:    context.Background(),
	}

	// Apply options
	for _, option := range options {
		option(store)
	}

	// Test connection
	if err := client.Ping(store.ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return store, nil
}

// RedisOption is a function that configures Redis store options
type RedisOption func(*RedisStore)

// WithRedisOptions sets store options
func WithRedisOptions(opts *StoreOptions) RedisOption {
	return func(rs *RedisStore) {
		rs.opts = opts
	}
}

// WithKey sets the key of the set holding the tracked codes
func WithKey(key string) RedisOption {
	return func(rs *RedisStore) {
		rs.opts.Key = key
	}
}

// WithContext sets the base context for store operations
func WithContext(ctx context.Context) RedisOption {
	return func(rs *RedisStore) {
		rs.ctx = ctx
	}
}

// ListAll returns the tracked codes sorted, Redis sets have no order.
func (rs *RedisStore) ListAll(ctx context.Context) ([]string, error) {
	codes, err := rs.client.SMembers(rs.scope(ctx), rs.opts.Key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list tracked codes from Redis: %w", err)
	}
	slices.Sort(codes)
	return codes, nil
}

func (rs *RedisStore) Insert(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("empty currency code")
	}
	ctx = rs.scope(ctx)

	pipe := rs.client.TxPipeline()
	pipe.SAdd(ctx, rs.opts.Key, code)
	if rs.opts.DefaultTTL > 0 {
		pipe.Expire(ctx, rs.opts.Key, rs.opts.DefaultTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert %s into Redis: %w", code, err)
	}
	return nil
}

func (rs *RedisStore) Delete(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	n, err := rs.client.SRem(rs.scope(ctx), rs.opts.Key, code).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s from Redis: %w", code, err)
	}
	if n == 0 {
		return fmt.Errorf("no such record: %s", code)
	}
	return nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// scope returns ctx, or the store's base context when ctx is nil
func (rs *RedisStore) scope(ctx context.Context) context.Context {
	if ctx == nil {
		return rs.ctx
	}
	return ctx
}
