package cache

import (
	"context"
	"time"

	"github.com/prodstock/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// CachedSnapshotLoader is a read-through decorator around a
// catalog.SnapshotLoader. Cache failures degrade to a direct load; a stock
// read must never fail because the cache is down.
type CachedSnapshotLoader struct {
	loader catalog.SnapshotLoader
	cache  SnapshotCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSnapshotLoader creates a read-through snapshot loader
func NewCachedSnapshotLoader(loader catalog.SnapshotLoader, cache SnapshotCache, ttl time.Duration, logger *zap.Logger) *CachedSnapshotLoader {
	return &CachedSnapshotLoader{
		loader: loader,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// LoadSnapshot returns the cached snapshot when fresh, loading and caching
// it otherwise
func (l *CachedSnapshotLoader) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	snapshot, err := l.cache.Get(ctx)
	if err != nil {
		l.logger.Warn("catalog snapshot cache read failed, loading directly", zap.Error(err))
	} else if snapshot != nil {
		return snapshot, nil
	}

	snapshot, err = l.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, snapshot, l.ttl); err != nil {
		l.logger.Warn("catalog snapshot cache write failed", zap.Error(err))
	}
	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next read sees catalog changes
func (l *CachedSnapshotLoader) Invalidate(ctx context.Context) {
	if err := l.cache.Invalidate(ctx); err != nil {
		l.logger.Warn("catalog snapshot cache invalidation failed", zap.Error(err))
	}
}

// Ensure CachedSnapshotLoader implements catalog.SnapshotLoader
var _ catalog.SnapshotLoader = (*CachedSnapshotLoader)(nil)
