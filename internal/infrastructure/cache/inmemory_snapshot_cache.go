package cache

import (
	"context"
	"sync"
	"time"

	"github.com/prodstock/backend/internal/domain/catalog"
)

// InMemorySnapshotCache implements SnapshotCache with process-local storage.
// Suitable for single-instance deployments and for running without redis.
type InMemorySnapshotCache struct {
	mu        sync.RWMutex
	snapshot  *catalog.Snapshot
	expiresAt time.Time
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache
func NewInMemorySnapshotCache() *InMemorySnapshotCache {
	return &InMemorySnapshotCache{}
}

// Get returns the cached snapshot, or nil on a miss
func (c *InMemorySnapshotCache) Get(ctx context.Context) (*catalog.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || time.Now().After(c.expiresAt) {
		return nil, nil
	}
	return c.snapshot, nil
}

// Set stores a snapshot with a TTL
func (c *InMemorySnapshotCache) Set(ctx context.Context, snapshot *catalog.Snapshot, ttl time.Duration) error {
	if snapshot == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = snapshot
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// Invalidate drops the cached snapshot
func (c *InMemorySnapshotCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	return nil
}

// Ensure InMemorySnapshotCache implements SnapshotCache
var _ SnapshotCache = (*InMemorySnapshotCache)(nil)
