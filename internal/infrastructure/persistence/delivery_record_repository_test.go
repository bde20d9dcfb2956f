package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prodstock/backend/internal/infrastructure/persistence/models"
)

func setupDeliveryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.DeliveryRecordModel{}, &models.DeliveryLineModel{})
	require.NoError(t, err)

	return db
}

func newDeliveryRecord(originRef string, status stock.DeliveryStatus, deliveredAt *time.Time, lines map[string]int64) *stock.DeliveryRecord {
	decimalLines := make(map[string]decimal.Decimal, len(lines))
	for key, qty := range lines {
		decimalLines[key] = decimal.NewFromInt(qty)
	}
	return &stock.DeliveryRecord{
		BaseEntity:  shared.NewBaseEntity(),
		OriginRef:   originRef,
		Status:      status,
		DeliveredAt: deliveredAt,
		Lines:       decimalLines,
	}
}

func TestGormDeliveryRecordRepository_Create(t *testing.T) {
	db := setupDeliveryTestDB(t)
	repo := NewGormDeliveryRecordRepository(db)
	ctx := context.Background()

	t.Run("creates record with lines", func(t *testing.T) {
		ts := time.Date(2026, 4, 14, 9, 30, 0, 0, time.UTC)
		record := newDeliveryRecord("PH-001", stock.DeliveryStatusDelivered, &ts,
			map[string]int64{"chicken": 30, "dryFruitMix": 5})

		err := repo.Create(ctx, record)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "PH-001", found.OriginRef)
		require.NotNil(t, found.DeliveredAt)
		assert.True(t, found.DeliveredAt.Equal(ts))
		require.Len(t, found.Lines, 2)
		assert.True(t, found.Lines["chicken"].Equal(decimal.NewFromInt(30)))
	})
}

func TestGormDeliveryRecordRepository_FindDeliveredInRange(t *testing.T) {
	db := setupDeliveryTestDB(t)
	repo := NewGormDeliveryRecordRepository(db)
	ctx := context.Background()

	ts := func(d, h int) time.Time { return time.Date(2026, 4, d, h, 0, 0, 0, time.UTC) }

	deliver := func(ref string, at time.Time, qty int64) *stock.DeliveryRecord {
		record := newDeliveryRecord(ref, stock.DeliveryStatusDelivered, &at, map[string]int64{"chicken": qty})
		require.NoError(t, repo.Create(ctx, record))
		return record
	}

	inWindow := deliver("PH-001", ts(14, 9), 30)
	aliasTagged := deliver("STORE-17", ts(16, 12), 10)
	deliver("PH-001", ts(25, 9), 40) // past window
	deliver("PH-002", ts(15, 9), 20) // other house

	inTransit := newDeliveryRecord("PH-001", stock.DeliveryStatusInTransit, nil, map[string]int64{"chicken": 99})
	require.NoError(t, repo.Create(ctx, inTransit))

	t.Run("returns delivered records for ref union in window", func(t *testing.T) {
		records, err := repo.FindDeliveredInRange(ctx, []string{"PH-001", "STORE-17"}, ts(14, 0), ts(20, 0))
		require.NoError(t, err)
		require.Len(t, records, 2)

		ids := []string{records[0].ID.String(), records[1].ID.String()}
		assert.Contains(t, ids, inWindow.ID.String())
		assert.Contains(t, ids, aliasTagged.ID.String())
	})

	t.Run("excludes non-delivered records", func(t *testing.T) {
		records, err := repo.FindDeliveredInRange(ctx, []string{"PH-001"}, ts(1, 0), ts(30, 0))
		require.NoError(t, err)
		for _, record := range records {
			assert.Equal(t, stock.DeliveryStatusDelivered, record.Status)
		}
	})

	t.Run("falls back to requested time when delivered time is missing", func(t *testing.T) {
		requestedAt := ts(17, 8)
		record := newDeliveryRecord("PH-003", stock.DeliveryStatusDelivered, nil, map[string]int64{"chicken": 7})
		record.RequestedAt = &requestedAt
		require.NoError(t, repo.Create(ctx, record))

		records, err := repo.FindDeliveredInRange(ctx, []string{"PH-003"}, ts(17, 0), ts(18, 0))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record.ID, records[0].ID)
	})

	t.Run("empty ref list yields no records", func(t *testing.T) {
		records, err := repo.FindDeliveredInRange(ctx, nil, ts(1, 0), ts(30, 0))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestGormDeliveryRecordRepository_FindByHouseRefs(t *testing.T) {
	db := setupDeliveryTestDB(t)
	repo := NewGormDeliveryRecordRepository(db)
	ctx := context.Background()

	for d := 1; d <= 4; d++ {
		at := time.Date(2026, 4, d, 10, 0, 0, 0, time.UTC)
		record := newDeliveryRecord("PH-001", stock.DeliveryStatusDelivered, &at, map[string]int64{"chicken": int64(d)})
		require.NoError(t, repo.Create(ctx, record))
	}

	t.Run("paginates and sorts by delivered_at", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 2, OrderBy: "delivered_at", OrderDir: "desc"}

		records, err := repo.FindByHouseRefs(ctx, []string{"PH-001"}, filter)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 4, records[0].DeliveredAt.Day())
	})

	t.Run("counts by refs", func(t *testing.T) {
		count, err := repo.CountByHouseRefs(ctx, []string{"PH-001"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
