package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chika/internal/observability"

	"github.com/redis/go-redis/v9"
)

const preferencesKeyPrefix = "prefs:%s"

// PreferencesKey is the cache key for a viewer's moderation settings.
func PreferencesKey(userID string) string {
	return fmt.Sprintf(preferencesKeyPrefix, userID)
}

// Store reads and writes JSON values in Redis. A Store without a client
// misses on every read and drops every write.
type Store struct {
	client *redis.Client
}

// NewStore wraps client, which may be nil.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Enabled reports whether the store has a Redis client.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// CacheAside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. Cache failures fall through to fetch.
func (s *Store) CacheAside(ctx context.Context, name, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := s.GetJSON(ctx, key, dest)
	if err == nil && found {
		observability.CacheLookups.WithLabelValues(name, "hit").Inc()
		return nil
	}
	observability.CacheLookups.WithLabelValues(name, "miss").Inc()

	if err := fetch(); err != nil {
		return err
	}

	if ttl > 0 {
		// best-effort
		_ = s.SetJSON(ctx, key, dest, ttl)
	}
	return nil
}

// Invalidate deletes key.
func (s *Store) Invalidate(ctx context.Context, key string) {
	if s.Enabled() {
		s.client.Del(ctx, key)
	}
}
