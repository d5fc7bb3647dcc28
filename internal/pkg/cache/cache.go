package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache errors
var (
	ErrNotAvailable = errors.New("cache not available")
	ErrNotFound     = errors.New("cache entry not found")
)

// Default TTLs for the cached read models. Entries are invalidated on every
// write path, so the TTL only bounds staleness after a missed invalidation.
const (
	CatalogTTL     = 5 * time.Minute
	TopStudentsTTL = 5 * time.Minute
)

// Store is a read-through cache over Redis. A nil client degrades every
// operation to a no-op so the service keeps working without Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a cache store. client may be nil.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Get retrieves and unmarshals a cached value into dest.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return ErrNotAvailable
	}

	data, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Set marshals and stores a value under key with the given TTL.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return s.client.Set(ctx, s.key(key), data, ttl).Err()
}

// Invalidate drops the given keys. Mutations call this after the database
// write succeeds; a failed write never touches the cache.
func (s *Store) Invalidate(ctx context.Context, keys ...string) error {
	if s.client == nil || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	return s.client.Del(ctx, prefixed...).Err()
}
