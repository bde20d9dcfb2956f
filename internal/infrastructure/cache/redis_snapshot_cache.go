package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
)

const defaultSnapshotKey = "catalog:snapshot"

// RedisSnapshotCache implements SnapshotCache using Redis.
// Suitable for distributed deployments where multiple instances should share
// one catalog view and invalidation must reach all of them.
type RedisSnapshotCache struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshotCache creates a snapshot cache on an existing Redis client
func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{
		client: client,
		key:    defaultSnapshotKey,
	}
}

// Get returns the cached snapshot, or nil on a miss
func (c *RedisSnapshotCache) Get(ctx context.Context) (*catalog.Snapshot, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog snapshot from redis: %w", err)
	}

	var snapshot catalog.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		// A corrupt entry behaves like a miss; the loader will overwrite it
		return nil, nil
	}
	return &snapshot, nil
}

// Set stores a snapshot with a TTL
func (c *RedisSnapshotCache) Set(ctx context.Context, snapshot *catalog.Snapshot, ttl time.Duration) error {
	if snapshot == nil {
		return nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize catalog snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog snapshot to redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog snapshot: %w", err)
	}
	return nil
}

// Ensure RedisSnapshotCache implements SnapshotCache
var _ SnapshotCache = (*RedisSnapshotCache)(nil)
