package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregator sums approved production and fulfilled deliveries for a house
// over a time window. All item keys are resolved before summing so that
// inconsistently tagged records land on the same canonical key.
//
// Returned maps are zero-filled for every catalog item applicable to the
// house (global items plus house-scoped items); keys that resolve to nothing
// in the catalog are still carried under their normalized raw form.
type Aggregator struct {
	production ProductionRecordRepository
	deliveries DeliveryRecordRepository
	resolver   *Resolver
	cal        *Calendar
}

// NewAggregator creates a new Aggregator bound to a resolver snapshot
func NewAggregator(production ProductionRecordRepository, deliveries DeliveryRecordRepository, resolver *Resolver, cal *Calendar) *Aggregator {
	return &Aggregator{
		production: production,
		deliveries: deliveries,
		resolver:   resolver,
		cal:        cal,
	}
}

// zeroLines returns a quantity map pre-filled with zero for every catalog
// item the house tracks, so downstream code never needs nil checks
func (a *Aggregator) zeroLines(houseCode string) map[string]decimal.Decimal {
	lines := make(map[string]decimal.Decimal)
	for _, item := range a.resolver.Snapshot().ItemsFor(houseCode) {
		lines[item.Key] = decimal.Zero
	}
	return lines
}

// SumProduction sums approved production for the house addressed by
// houseRefs, for production days in [fromDay, toDay] inclusive.
// Production is day-granular: a record's calendar day either falls in the
// window or it does not.
func (a *Aggregator) SumProduction(ctx context.Context, houseRefs []string, houseCode string, fromDay, toDay time.Time) (map[string]decimal.Decimal, error) {
	lines := a.zeroLines(houseCode)
	if toDay.Before(fromDay) {
		return lines, nil
	}

	records, err := a.production.FindApprovedInRange(ctx, houseRefs, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("%w: production for %v: %v", shared.ErrDataUnavailable, houseRefs, err)
	}

	for i := range records {
		rec := &records[i]
		if rec.Status != ApprovalStatusApproved {
			continue
		}
		day := a.cal.DayOf(rec.Date)
		if day.Before(a.cal.DayOf(fromDay)) || day.After(a.cal.DayOf(toDay)) {
			continue
		}
		for rawKey, qty := range rec.Lines {
			key := a.resolver.ResolveItemKey(rawKey).Canonical
			lines[key] = lines[key].Add(qty)
		}
	}
	return lines, nil
}

// SumDeliveries sums fulfilled deliveries for the house addressed by
// houseRefs whose effective timestamp falls in (after, until]. Deliveries
// are timestamp-granular: a shipment on the boundary day counts only if its
// effective time is strictly later than the lower bound.
func (a *Aggregator) SumDeliveries(ctx context.Context, houseRefs []string, houseCode string, after, until time.Time) (map[string]decimal.Decimal, error) {
	lines := a.zeroLines(houseCode)
	if !until.After(after) {
		return lines, nil
	}

	records, err := a.deliveries.FindDeliveredInRange(ctx, houseRefs, after, until)
	if err != nil {
		return nil, fmt.Errorf("%w: deliveries for %v: %v", shared.ErrDataUnavailable, houseRefs, err)
	}

	for i := range records {
		rec := &records[i]
		if !rec.IsDelivered() {
			continue
		}
		ts := rec.EffectiveTime()
		if !ts.After(after) || ts.After(until) {
			continue
		}
		for rawKey, qty := range rec.Lines {
			key := a.resolver.ResolveItemKey(rawKey).Canonical
			lines[key] = lines[key].Add(qty)
		}
	}
	return lines, nil
}
