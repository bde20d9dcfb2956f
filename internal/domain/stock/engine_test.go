package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func committedCount(t *testing.T, houseRef string, day time.Time, lines map[string]decimal.Decimal) Recalibration {
	t.Helper()
	r, err := NewRecalibration(houseRef, day, lines, "tester")
	require.NoError(t, err)
	require.NoError(t, r.Approve("reviewer", ""))
	return *r
}

func chickenOnly(n int64) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{"chicken": qty(n)}
}

func TestEngine_ComputeStock(t *testing.T) {
	cal := NewCalendar(DefaultLocation())
	loc := cal.Location()
	ctx := context.Background()
	apr := func(d, h int) time.Time { return time.Date(2026, 4, d, h, 0, 0, 0, loc) }
	mar := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, loc) }

	newEngine := func(prod *fakeProductionRepo, del *fakeDeliveryRepo, rec *fakeRecalibrationRepo) (*Engine, *Resolver) {
		resolver := NewResolver(testSnapshot(t), nil)
		return NewEngine(prod, del, rec, cal, DefaultEngineOptions()), resolver
	}

	t.Run("no records yields an all-zero statement", func(t *testing.T) {
		engine, resolver := newEngine(&fakeProductionRepo{}, &fakeDeliveryRepo{}, &fakeRecalibrationRepo{})

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(20, 12))
		require.NoError(t, err)

		assert.Equal(t, AnchorNone, stmt.Anchor)
		assert.Empty(t, stmt.AnchorID)
		assert.True(t, stmt.HouseResolved)
		assert.Equal(t, "PH-001", stmt.HouseCode)
		require.Contains(t, stmt.Lines, "chicken")
		require.Contains(t, stmt.Lines, "dryFruitMix")
		for key, line := range stmt.Lines {
			assert.True(t, line.Quantity.IsZero(), "line %s", key)
			assert.Equal(t, FlagNormal, line.Flag)
		}
	})

	t.Run("day-one count supersedes same-day activity", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", apr(1, 0), chickenOnly(120)),
		}}
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", apr(1, 18), chickenOnly(80)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", apr(1, 0), chickenOnly(500)),
		}}
		engine, resolver := newEngine(prod, del, rec)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(1, 23))
		require.NoError(t, err)

		assert.Equal(t, AnchorFullReset, stmt.Anchor)
		line := stmt.Lines["chicken"]
		assert.True(t, line.Quantity.Equal(qty(500)), "got %s", line.Quantity)
		assert.True(t, line.Produced.IsZero())
		assert.True(t, line.Delivered.IsZero())
		// the day's activity still shows in period-to-date totals
		assert.True(t, stmt.PeriodProduced["chicken"].Equal(qty(120)))
		assert.True(t, stmt.PeriodDelivered["chicken"].Equal(qty(80)))
	})

	t.Run("day-one count accrues later activity", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", apr(5, 0), chickenOnly(200)),
		}}
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", apr(10, 11), chickenOnly(150)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", apr(1, 0), chickenOnly(500)),
		}}
		engine, resolver := newEngine(prod, del, rec)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(30, 20))
		require.NoError(t, err)

		line := stmt.Lines["chicken"]
		assert.True(t, line.Opening.Equal(qty(500)))
		assert.True(t, line.Produced.Equal(qty(200)))
		assert.True(t, line.Delivered.Equal(qty(150)))
		assert.True(t, line.Quantity.Equal(qty(550)), "got %s", line.Quantity)
	})

	t.Run("mid-period count splits the month", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", apr(10, 0), chickenOnly(60)), // before the count: baked in
			approvedProduction(t, "PH-001", apr(14, 0), chickenOnly(25)), // count day itself: baked in
			approvedProduction(t, "PH-001", apr(20, 0), chickenOnly(80)),
		}}
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", apr(12, 10), chickenOnly(40)), // before the count: baked in
			deliveredAt(t, "PH-001", apr(14, 9), chickenOnly(0)),   // count day, post-midnight: counted
			deliveredAt(t, "PH-001", apr(16, 15), chickenOnly(30)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", apr(14, 0), chickenOnly(420)),
		}}
		engine, resolver := newEngine(prod, del, rec)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(25, 12))
		require.NoError(t, err)

		assert.Equal(t, AnchorMidPeriod, stmt.Anchor)
		line := stmt.Lines["chicken"]
		assert.True(t, line.Opening.Equal(qty(420)))
		assert.True(t, line.Produced.Equal(qty(80)))
		assert.True(t, line.Delivered.Equal(qty(30)))
		assert.True(t, line.Quantity.Equal(qty(470)), "got %s", line.Quantity)
	})

	t.Run("mid-period count includes same-day deliveries by timestamp", func(t *testing.T) {
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", apr(14, 9), chickenOnly(30)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", apr(14, 0), chickenOnly(100)),
		}}
		engine, resolver := newEngine(&fakeProductionRepo{}, del, rec)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(25, 12))
		require.NoError(t, err)

		line := stmt.Lines["chicken"]
		assert.True(t, line.Delivered.Equal(qty(30)))
		assert.True(t, line.Quantity.Equal(qty(70)), "got %s", line.Quantity)
	})

	t.Run("previous period closing rolls forward as opening", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", mar(10, 0), chickenOnly(100)),
			approvedProduction(t, "PH-001", apr(5, 0), chickenOnly(20)),
		}}
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", mar(20, 14), chickenOnly(50)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", mar(1, 0), chickenOnly(300)),
		}}
		engine, resolver := newEngine(prod, del, rec)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(10, 12))
		require.NoError(t, err)

		assert.Equal(t, AnchorNone, stmt.Anchor)
		line := stmt.Lines["chicken"]
		// March closed at 300 + 100 - 50 = 350
		assert.True(t, line.Opening.Equal(qty(350)), "got %s", line.Opening)
		assert.True(t, line.Produced.Equal(qty(20)))
		assert.True(t, line.Quantity.Equal(qty(370)), "got %s", line.Quantity)
	})

	t.Run("anchorless previous period still contributes its activity", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", mar(15, 0), chickenOnly(90)),
		}}
		engine, resolver := newEngine(prod, &fakeDeliveryRepo{}, &fakeRecalibrationRepo{})

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(10, 12))
		require.NoError(t, err)

		// roll-back stops one period deep: March opens at zero, its
		// production still carries into April's opening
		line := stmt.Lines["chicken"]
		assert.True(t, line.Opening.Equal(qty(90)), "got %s", line.Opening)
	})

	t.Run("zero roll-forward depth opens at zero", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", mar(15, 0), chickenOnly(90)),
		}}
		resolver := NewResolver(testSnapshot(t), nil)
		opts := DefaultEngineOptions()
		opts.RollForwardDepth = 0
		engine := NewEngine(prod, &fakeDeliveryRepo{}, &fakeRecalibrationRepo{}, cal, opts)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(10, 12))
		require.NoError(t, err)
		assert.True(t, stmt.Lines["chicken"].Opening.IsZero())
	})

	t.Run("over-distribution is reported negative and flagged", func(t *testing.T) {
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", apr(8, 10), chickenOnly(140)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", apr(1, 0), chickenOnly(100)),
		}}
		engine, resolver := newEngine(&fakeProductionRepo{}, del, rec)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(15, 12))
		require.NoError(t, err)

		line := stmt.Lines["chicken"]
		assert.True(t, line.Quantity.Equal(qty(-40)), "got %s", line.Quantity)
		assert.Equal(t, FlagOverDistributed, line.Flag)
	})

	t.Run("recomputation is deterministic", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", apr(5, 0), chickenOnly(200)),
		}}
		del := &fakeDeliveryRepo{records: []DeliveryRecord{
			deliveredAt(t, "PH-001", apr(10, 11), chickenOnly(150)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "PH-001", apr(1, 0), chickenOnly(500)),
		}}
		engine, resolver := newEngine(prod, del, rec)

		first, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(20, 12))
		require.NoError(t, err)
		second, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(20, 12))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("alias and canonical queries agree", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "STORE-17", apr(5, 0), chickenOnly(200)),
		}}
		rec := &fakeRecalibrationRepo{records: []Recalibration{
			committedCount(t, "DEPOT-3", apr(1, 0), chickenOnly(500)),
		}}
		engine, resolver := newEngine(prod, &fakeDeliveryRepo{}, rec)

		byCanonical, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(20, 12))
		require.NoError(t, err)
		byAlias, err := engine.ComputeStock(ctx, resolver, "STORE-17", apr(20, 12))
		require.NoError(t, err)

		assert.Equal(t, "PH-001", byCanonical.HouseCode)
		assert.Equal(t, "PH-001", byAlias.HouseCode)
		assert.True(t, byAlias.HouseResolved)
		assert.Equal(t, byCanonical.Lines, byAlias.Lines)
		assert.True(t, byCanonical.Lines["chicken"].Quantity.Equal(qty(700)))
	})

	t.Run("unknown house degrades to raw reference", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "GHOST-9", apr(5, 0), chickenOnly(10)),
		}}
		engine, resolver := newEngine(prod, &fakeDeliveryRepo{}, &fakeRecalibrationRepo{})

		stmt, err := engine.ComputeStock(ctx, resolver, "GHOST-9", apr(20, 12))
		require.NoError(t, err)

		assert.False(t, stmt.HouseResolved)
		assert.Equal(t, "GHOST-9", stmt.HouseCode)
		assert.True(t, stmt.Lines["chicken"].Quantity.Equal(qty(10)))
	})

	t.Run("uncataloged item keys survive under their normalized form", func(t *testing.T) {
		prod := &fakeProductionRepo{records: []ProductionRecord{
			approvedProduction(t, "PH-001", apr(5, 0), map[string]decimal.Decimal{
				"mystery_masala_packets": qty(12),
			}),
		}}
		engine, resolver := newEngine(prod, &fakeDeliveryRepo{}, &fakeRecalibrationRepo{})

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(20, 12))
		require.NoError(t, err)

		line, ok := stmt.Lines["mysteryMasala"]
		require.True(t, ok)
		assert.True(t, line.Quantity.Equal(qty(12)))
	})

	t.Run("store failure is never reported as zero stock", func(t *testing.T) {
		engine, resolver := newEngine(
			&fakeProductionRepo{err: errors.New("connection refused")},
			&fakeDeliveryRepo{},
			&fakeRecalibrationRepo{},
		)

		stmt, err := engine.ComputeStock(ctx, resolver, "PH-001", apr(20, 12))
		assert.Nil(t, stmt)
		assert.ErrorIs(t, err, shared.ErrDataUnavailable)
	})
}
