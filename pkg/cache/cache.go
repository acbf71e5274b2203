// Package cache is a JSON-over-Redis read-through cache. A nil *Store, or
// one whose Redis is unreachable, behaves as an always-miss cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vitrine/backoffice/config"
	"github.com/vitrine/backoffice/pkg/metrics"
)

const driver = "redis"

type Store struct {
	rdb *redis.Client
}

// New wraps an existing client. A nil client yields a no-op store.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect creates a client from config and verifies it with a ping.
// On failure it returns a no-op store together with the error so the
// caller can log and carry on.
func Connect(ctx context.Context) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return New(nil), fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb), nil
}

func (s *Store) enabled() bool { return s != nil && s.rdb != nil }

// Get unmarshals the value under key into dest. Returns true on a hit.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.enabled() {
		return false
	}

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(driver).Inc()
	return true
}

// Set stores value as JSON under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Forget removes keys.
func (s *Store) Forget(ctx context.Context, keys ...string) error {
	if !s.enabled() || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	if !s.enabled() {
		return nil
	}
	return s.rdb.Close()
}
