package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	house, err := catalog.NewProductionHouse("PH-001", "Whitefield Kitchen")
	require.NoError(t, err)
	item, err := catalog.NewItem("chicken", "Chicken", "packet", catalog.ItemScopeGlobal, "")
	require.NoError(t, err)
	return &catalog.Snapshot{
		Houses: []catalog.ProductionHouse{*house},
		Items:  []catalog.Item{*item},
	}
}

func TestInMemorySnapshotCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewInMemorySnapshotCache()

		snapshot, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemorySnapshotCache()
		stored := testSnapshot(t)

		require.NoError(t, c.Set(ctx, stored, time.Minute))

		snapshot, err := c.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, "PH-001", snapshot.Houses[0].Code)
	})

	t.Run("expired entry behaves like a miss", func(t *testing.T) {
		c := NewInMemorySnapshotCache()

		require.NoError(t, c.Set(ctx, testSnapshot(t), -time.Second))

		snapshot, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		c := NewInMemorySnapshotCache()
		require.NoError(t, c.Set(ctx, testSnapshot(t), time.Minute))

		require.NoError(t, c.Invalidate(ctx))

		snapshot, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("nil snapshot is not stored", func(t *testing.T) {
		c := NewInMemorySnapshotCache()
		require.NoError(t, c.Set(ctx, nil, time.Minute))

		snapshot, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})
}

// countingLoader counts pass-through loads
type countingLoader struct {
	snapshot *catalog.Snapshot
	err      error
	calls    int
}

func (l *countingLoader) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.snapshot, nil
}

// failingCache always errors
type failingCache struct{}

func (failingCache) Get(ctx context.Context) (*catalog.Snapshot, error) {
	return nil, errors.New("cache down")
}

func (failingCache) Set(ctx context.Context, snapshot *catalog.Snapshot, ttl time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Invalidate(ctx context.Context) error {
	return errors.New("cache down")
}

func TestCachedSnapshotLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("second load is served from cache", func(t *testing.T) {
		inner := &countingLoader{snapshot: testSnapshot(t)}
		loader := NewCachedSnapshotLoader(inner, NewInMemorySnapshotCache(), time.Minute, zap.NewNop())

		first, err := loader.LoadSnapshot(ctx)
		require.NoError(t, err)
		second, err := loader.LoadSnapshot(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, first.Houses[0].Code, second.Houses[0].Code)
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		inner := &countingLoader{snapshot: testSnapshot(t)}
		loader := NewCachedSnapshotLoader(inner, NewInMemorySnapshotCache(), time.Minute, zap.NewNop())

		_, err := loader.LoadSnapshot(ctx)
		require.NoError(t, err)

		loader.Invalidate(ctx)

		_, err = loader.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("cache failure degrades to direct load", func(t *testing.T) {
		inner := &countingLoader{snapshot: testSnapshot(t)}
		loader := NewCachedSnapshotLoader(inner, failingCache{}, time.Minute, zap.NewNop())

		snapshot, err := loader.LoadSnapshot(ctx)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		inner := &countingLoader{err: errors.New("db down")}
		loader := NewCachedSnapshotLoader(inner, NewInMemorySnapshotCache(), time.Minute, zap.NewNop())

		_, err := loader.LoadSnapshot(ctx)
		assert.Error(t, err)
	})
}
