// Package storage persists the record collections and the active session
// as whole-value JSON blobs in a key-value store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrBlobNotFound is returned by Get when the key has no value.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore reads and writes named opaque blobs. Values are written
// wholesale; there is no partial update.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RedisStore is a Redis-backed BlobStore.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
// All keys are namespaced under prefix.
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

// Get retrieves a blob. Returns ErrBlobNotFound when the key is absent.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s failed: %w", key, err)
	}
	return data, nil
}

// Set writes a blob, replacing any previous value. No expiry: the
// collections are durable.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", key, err)
	}
	return nil
}

// Delete removes a blob. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s failed: %w", key, err)
	}
	return nil
}

// Ping checks store connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
