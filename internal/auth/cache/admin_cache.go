package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	adminKeyPrefix = "catalog:admin:" // catalog:admin:{sso_id} -> "1" | "0"
	DefaultTTL     = 30 * time.Second
)

// AdminCache memoizes admin checks in Redis. A nil *AdminCache is a valid,
// always-missing cache.
type AdminCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAdminCache(client *redis.Client, ttl time.Duration) *AdminCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AdminCache{client: client, ttl: ttl}
}

// Get returns the cached decision and whether one was present.
func (c *AdminCache) Get(ctx context.Context, ssoID string) (active, found bool, err error) {
	if c == nil {
		return false, false, nil
	}

	v, err := c.client.Get(ctx, c.key(ssoID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read admin cache: %w", err)
	}
	return v == "1", true, nil
}

func (c *AdminCache) Set(ctx context.Context, ssoID string, active bool) error {
	if c == nil {
		return nil
	}

	v := "0"
	if active {
		v = "1"
	}
	if err := c.client.Set(ctx, c.key(ssoID), v, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write admin cache: %w", err)
	}
	return nil
}

func (c *AdminCache) Invalidate(ctx context.Context, ssoID string) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key(ssoID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate admin cache: %w", err)
	}
	return nil
}

func (c *AdminCache) key(ssoID string) string {
	return adminKeyPrefix + ssoID
}
