package cache

import (
	"context"
	"time"

	"github.com/prodstock/backend/internal/domain/catalog"
)

// SnapshotCache stores one point-in-time catalog snapshot.
// The catalog changes rarely and every stock read needs the whole of it, so
// the cache holds a single entry rather than per-key values. Computed stock
// statements are never cached; only the catalog inputs are.
type SnapshotCache interface {
	// Get returns the cached snapshot, or nil on a miss
	Get(ctx context.Context) (*catalog.Snapshot, error)

	// Set stores a snapshot with a TTL
	Set(ctx context.Context, snapshot *catalog.Snapshot, ttl time.Duration) error

	// Invalidate drops the cached snapshot
	Invalidate(ctx context.Context) error
}
