package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Flag annotates a computed stock line
type Flag string

const (
	// FlagNormal marks a non-negative computed quantity
	FlagNormal Flag = "normal"
	// FlagOverDistributed marks a negative computed quantity: more was
	// shipped out than accounted for. The value is reported as-is, never
	// clamped, so operators can see the size of the shortfall.
	FlagOverDistributed Flag = "over_distributed"
)

// StockLine is the derived stock position of one item.
// Quantity = Opening + Produced - Delivered always holds; Produced and
// Delivered are the post-anchor contributions that actually enter the
// arithmetic.
type StockLine struct {
	Opening   decimal.Decimal
	Produced  decimal.Decimal
	Delivered decimal.Decimal
	Quantity  decimal.Decimal
	Flag      Flag
}

// StockStatement is the derived stock position of a house at a point in
// time. It is recomputed on every query and never persisted.
//
// PeriodProduced and PeriodDelivered are period-to-date activity totals for
// display. When an anchor exists they differ from the per-line Produced and
// Delivered contributions, because activity on or before the anchor is
// already baked into the counted snapshot and must not enter the arithmetic
// again.
type StockStatement struct {
	HouseRef        string
	HouseCode       string
	HouseResolved   bool
	AsOf            time.Time
	Period          Period
	Anchor          AnchorKind
	AnchorID        string
	Lines           map[string]StockLine
	PeriodProduced  map[string]decimal.Decimal
	PeriodDelivered map[string]decimal.Decimal
}

// EngineOptions tunes the reconciliation engine
type EngineOptions struct {
	// RollForwardDepth bounds how many periods an opening balance may roll
	// back through when no anchor exists. The source system uses exactly 1:
	// if the previous period also has no anchor, its opening is zero.
	RollForwardDepth int
	// ItemSuffixes are the unit-qualifier words stripped during item key
	// normalization
	ItemSuffixes []string
}

// DefaultEngineOptions returns the options matching the source system
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		RollForwardDepth: 1,
		ItemSuffixes:     DefaultItemSuffixes,
	}
}

// Engine derives the current stock of a house by combining an anchor
// snapshot with accumulated production and deliveries since that anchor.
//
// The engine is a pure read path: it performs no mutation, keeps no state
// between calls, and may be invoked concurrently. Each computation resolves
// identifiers against a single catalog snapshot so one query sees one
// consistent catalog state.
type Engine struct {
	production     ProductionRecordRepository
	deliveries     DeliveryRecordRepository
	recalibrations RecalibrationRepository
	cal            *Calendar
	opts           EngineOptions
}

// NewEngine creates a reconciliation engine
func NewEngine(
	production ProductionRecordRepository,
	deliveries DeliveryRecordRepository,
	recalibrations RecalibrationRepository,
	cal *Calendar,
	opts EngineOptions,
) *Engine {
	if opts.RollForwardDepth < 0 {
		opts.RollForwardDepth = 0
	}
	if opts.ItemSuffixes == nil {
		opts.ItemSuffixes = DefaultItemSuffixes
	}
	return &Engine{
		production:     production,
		deliveries:     deliveries,
		recalibrations: recalibrations,
		cal:            cal,
		opts:           opts,
	}
}

// Calendar returns the engine's accounting calendar
func (e *Engine) Calendar() *Calendar {
	return e.cal
}

// ComputeStock derives the stock of the house addressed by houseRef as of
// the given instant.
//
// An unresolvable house reference does not fail: the engine runs with the
// raw reference, which yields an all-zero statement when no records match
// anywhere. Store errors are surfaced as ErrDataUnavailable so "could not
// fetch" is never mistaken for "truly zero".
func (e *Engine) ComputeStock(ctx context.Context, resolver *Resolver, houseRef string, asOf time.Time) (*StockStatement, error) {
	res := resolver.ResolveHouse(houseRef)
	refs := resolver.HouseRefs(houseRef)

	agg := NewAggregator(e.production, e.deliveries, resolver, e.cal)
	selector := NewAnchorSelector(e.recalibrations, e.cal)

	period := e.cal.CurrentPeriod(asOf)
	anchor, err := selector.Select(ctx, refs, period)
	if err != nil {
		return nil, err
	}

	opening, produced, delivered, err := e.computePosition(ctx, agg, refs, res.Canonical, period, anchor, asOf, e.opts.RollForwardDepth)
	if err != nil {
		return nil, err
	}

	stmt := &StockStatement{
		HouseRef:      houseRef,
		HouseCode:     res.Canonical,
		HouseResolved: res.Resolved,
		AsOf:          asOf,
		Period:        period,
		Anchor:        anchor.Kind,
		Lines:         buildLines(opening, produced, delivered),
	}
	if anchor.Snapshot != nil {
		stmt.AnchorID = anchor.Snapshot.ID.String()
	}

	// Period-to-date activity is informational. Without an anchor it is
	// exactly what entered the arithmetic; with an anchor it must be
	// recomputed over the whole period for display.
	if anchor.Kind == AnchorNone {
		stmt.PeriodProduced = produced
		stmt.PeriodDelivered = delivered
	} else {
		stmt.PeriodProduced, err = agg.SumProduction(ctx, refs, res.Canonical, period.Start, asOf)
		if err != nil {
			return nil, err
		}
		stmt.PeriodDelivered, err = agg.SumDeliveries(ctx, refs, res.Canonical, period.Start.Add(-time.Nanosecond), asOf)
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// computePosition derives (opening, produced, delivered) for a period
// bounded above by asOf, branching on the anchor regime.
func (e *Engine) computePosition(
	ctx context.Context,
	agg *Aggregator,
	refs []string,
	houseCode string,
	period Period,
	anchor Anchor,
	asOf time.Time,
	depth int,
) (opening, produced, delivered map[string]decimal.Decimal, err error) {
	resolver := agg.resolver

	switch anchor.Kind {
	case AnchorFullReset:
		// The snapshot is the post-activity truth for day 1: neither
		// production nor deliveries dated day 1 may be applied again.
		// Activity from day 2 onward accrues on top of the counted figures.
		opening = snapshotLines(anchor.Snapshot, resolver, houseCode)
		day1End := e.cal.EndOfDay(anchor.Snapshot.EffectiveDate)
		produced, err = agg.SumProduction(ctx, refs, houseCode, period.Start.AddDate(0, 0, 1), asOf)
		if err != nil {
			return nil, nil, nil, err
		}
		delivered, err = agg.SumDeliveries(ctx, refs, houseCode, day1End, asOf)
		if err != nil {
			return nil, nil, nil, err
		}

	case AnchorMidPeriod:
		// Production dated the anchor's own day is excluded (the physical
		// count is taken after the day's production is shelved), while
		// deliveries the same day after start-of-day ARE included by full
		// timestamp. The asymmetry is deliberate in the source system.
		opening = snapshotLines(anchor.Snapshot, resolver, houseCode)
		anchorDay := e.cal.DayOf(anchor.Snapshot.EffectiveDate)
		produced, err = agg.SumProduction(ctx, refs, houseCode, anchorDay.AddDate(0, 0, 1), asOf)
		if err != nil {
			return nil, nil, nil, err
		}
		delivered, err = agg.SumDeliveries(ctx, refs, houseCode, anchorDay, asOf)
		if err != nil {
			return nil, nil, nil, err
		}

	default: // AnchorNone
		opening, err = e.closingBalance(ctx, agg, refs, houseCode, e.cal.PreviousPeriod(period), depth)
		if err != nil {
			return nil, nil, nil, err
		}
		produced, err = agg.SumProduction(ctx, refs, houseCode, period.Start, asOf)
		if err != nil {
			return nil, nil, nil, err
		}
		delivered, err = agg.SumDeliveries(ctx, refs, houseCode, period.Start.Add(-time.Nanosecond), asOf)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return opening, produced, delivered, nil
}

// closingBalance derives a period's closing stock, used as the next
// period's opening balance. depth counts the remaining roll-back levels:
// at zero the opening is all-zero rather than recursing further.
func (e *Engine) closingBalance(ctx context.Context, agg *Aggregator, refs []string, houseCode string, period Period, depth int) (map[string]decimal.Decimal, error) {
	if depth <= 0 {
		return agg.zeroLines(houseCode), nil
	}

	selector := NewAnchorSelector(e.recalibrations, e.cal)
	anchor, err := selector.Select(ctx, refs, period)
	if err != nil {
		return nil, err
	}

	opening, produced, delivered, err := e.computePosition(ctx, agg, refs, houseCode, period, anchor, period.End, depth-1)
	if err != nil {
		return nil, err
	}

	closing := make(map[string]decimal.Decimal, len(opening))
	for key, line := range buildLines(opening, produced, delivered) {
		closing[key] = line.Quantity
	}
	return closing, nil
}

// snapshotLines resolves a recalibration's counted lines onto canonical
// item keys, zero-filled for the house's catalog
func snapshotLines(snap *Recalibration, resolver *Resolver, houseCode string) map[string]decimal.Decimal {
	lines := make(map[string]decimal.Decimal)
	for _, item := range resolver.Snapshot().ItemsFor(houseCode) {
		lines[item.Key] = decimal.Zero
	}
	for rawKey, qty := range snap.Lines {
		key := resolver.ResolveItemKey(rawKey).Canonical
		lines[key] = lines[key].Add(qty)
	}
	return lines
}

// buildLines combines the three quantity maps into flagged stock lines over
// the union of their keys
func buildLines(opening, produced, delivered map[string]decimal.Decimal) map[string]StockLine {
	keys := make(map[string]struct{})
	for k := range opening {
		keys[k] = struct{}{}
	}
	for k := range produced {
		keys[k] = struct{}{}
	}
	for k := range delivered {
		keys[k] = struct{}{}
	}

	lines := make(map[string]StockLine, len(keys))
	for key := range keys {
		line := StockLine{
			Opening:   opening[key],
			Produced:  produced[key],
			Delivered: delivered[key],
		}
		line.Quantity = line.Opening.Add(line.Produced).Sub(line.Delivered)
		line.Flag = FlagNormal
		if line.Quantity.IsNegative() {
			line.Flag = FlagOverDistributed
		}
		lines[key] = line
	}
	return lines
}
