package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// SweetCache caches single catalog entries by id. Entries expire after the
// configured TTL and are invalidated eagerly on every stock or field
// mutation, so a cached quantity is never older than the last write.
// Key format: sweet:<id>
type SweetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSweetCache creates a SweetCache wrapping the given Redis client. A
// non-positive ttl falls back to the default.
func NewSweetCache(client *redis.Client, ttl time.Duration) *SweetCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SweetCache{client: client, ttl: ttl}
}

// Get returns the cached sweet, or (nil, nil) on a miss.
func (c *SweetCache) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var s domain.Sweet
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt entry behaves like a miss after eviction.
		_ = c.client.Del(ctx, c.key(id)).Err()
		return nil, nil
	}
	return &s, nil
}

// Set stores the sweet with the cache TTL.
func (c *SweetCache) Set(ctx context.Context, s *domain.Sweet) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(s.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry for id.
func (c *SweetCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *SweetCache) key(id string) string {
	return "sweet:" + id
}
