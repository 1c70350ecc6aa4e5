package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the record list when none is configured
const DefaultRedisKey = "rentcalc:records"

// RedisBackend stores the blob under a single Redis key. Transient failures
// are retried with exponential backoff; a missing key is not retried.
type RedisBackend struct {
	client     *redis.Client
	key        string
	maxRetries uint64
}

// NewRedisClient creates a Redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     4,
		MinIdleConns: 1,
		DialTimeout:  3 * time.Second,
	})
}

// NewRedisBackend wraps client. An empty key uses DefaultRedisKey.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key, maxRetries: 3}
}

// Key returns the Redis key in use
func (b *RedisBackend) Key() string { return b.key }

func (b *RedisBackend) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxElapsedTime = 5 * time.Second
	return backoff.WithContext(backoff.WithMaxRetries(exp, b.maxRetries), ctx)
}

func (b *RedisBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := backoff.RetryWithData(func() ([]byte, error) {
		data, err := b.client.Get(ctx, b.key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, backoff.Permanent(ErrNoData)
		}
		return data, err
	}, b.policy(ctx))
	if errors.Is(err, ErrNoData) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", b.key, err)
	}
	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, data []byte) error {
	err := backoff.Retry(func() error {
		return b.client.Set(ctx, b.key, data, 0).Err()
	}, b.policy(ctx))
	if err != nil {
		return fmt.Errorf("set %s: %w", b.key, err)
	}
	return nil
}

// Close closes the Redis connection
func (b *RedisBackend) Close() {
	if b.client != nil {
		_ = b.client.Close()
	}
}
