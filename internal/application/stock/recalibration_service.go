package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// RecalibrationService provides application services for recalibration
// submission and review.
//
// The write path is strict where the read path is lenient: a submission is
// rejected outright when the house reference or any item key fails to
// resolve against the catalog, so only clean identifiers enter the record
// store. Accepted submissions are stored under canonical identifiers.
type RecalibrationService struct {
	recalibrations stock.RecalibrationRepository
	snapshots      catalog.SnapshotLoader
	cal            *stock.Calendar
	eventBus       shared.EventBus
	suffixes       []string
	directApprove  bool
}

// NewRecalibrationService creates a new RecalibrationService.
// With directApprove set, submissions commit immediately instead of waiting
// for review.
func NewRecalibrationService(
	recalibrations stock.RecalibrationRepository,
	snapshots catalog.SnapshotLoader,
	cal *stock.Calendar,
	eventBus shared.EventBus,
	suffixes []string,
	directApprove bool,
) *RecalibrationService {
	return &RecalibrationService{
		recalibrations: recalibrations,
		snapshots:      snapshots,
		cal:            cal,
		eventBus:       eventBus,
		suffixes:       suffixes,
		directApprove:  directApprove,
	}
}

// ===================== Query Methods =====================

// GetByID retrieves a recalibration by ID
func (s *RecalibrationService) GetByID(ctx context.Context, id uuid.UUID) (*RecalibrationResponse, error) {
	r, err := s.recalibrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToRecalibrationResponse(r)
	return &response, nil
}

// ListByHouse retrieves recalibrations for the house addressed by houseRef,
// including ones recorded under any of its aliases
func (s *RecalibrationService) ListByHouse(ctx context.Context, houseRef string, filter RecalibrationListFilter) ([]RecalibrationResponse, int64, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	refs := stock.NewResolver(snap, s.suffixes).HouseRefs(houseRef)

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}

	rs, err := s.recalibrations.FindByHouseRefs(ctx, refs, filter.Status, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.recalibrations.CountByHouseRefs(ctx, refs, filter.Status)
	if err != nil {
		return nil, 0, err
	}

	return ToRecalibrationResponses(rs), total, nil
}

// ===================== Command Methods =====================

// Submit records a new physical count for the house addressed by houseRef
func (s *RecalibrationService) Submit(ctx context.Context, houseRef string, req SubmitRecalibrationRequest) (*RecalibrationResponse, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	resolver := stock.NewResolver(snap, s.suffixes)

	house := resolver.ResolveHouse(houseRef)
	if !house.Resolved {
		return nil, shared.NewDomainError("UNKNOWN_HOUSE", fmt.Sprintf("No production house matches %q", houseRef))
	}

	effectiveDay := s.cal.DayOf(req.EffectiveDate)
	if effectiveDay.After(s.cal.DayOf(time.Now())) {
		return nil, shared.NewDomainError("FUTURE_DATE", "Effective date cannot be in the future")
	}

	lines, err := s.resolveLines(resolver, house.Canonical, req.Items)
	if err != nil {
		return nil, err
	}

	r, err := stock.NewRecalibration(house.Canonical, effectiveDay, lines, req.SubmittedBy)
	if err != nil {
		return nil, err
	}

	if s.directApprove {
		if err := r.MarkApprovedOnSubmit(); err != nil {
			return nil, err
		}
	}

	if err := s.recalibrations.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToRecalibrationResponse(r)
	return &response, nil
}

// Approve commits a pending recalibration, making it eligible as an anchor
func (s *RecalibrationService) Approve(ctx context.Context, id uuid.UUID, req ReviewRecalibrationRequest) (*RecalibrationResponse, error) {
	r, err := s.recalibrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Approve(req.ReviewedBy, req.Note); err != nil {
		return nil, err
	}

	if err := s.recalibrations.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToRecalibrationResponse(r)
	return &response, nil
}

// Reject discards a pending recalibration
func (s *RecalibrationService) Reject(ctx context.Context, id uuid.UUID, req ReviewRecalibrationRequest) (*RecalibrationResponse, error) {
	r, err := s.recalibrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Reject(req.ReviewedBy, req.Note); err != nil {
		return nil, err
	}

	if err := s.recalibrations.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToRecalibrationResponse(r)
	return &response, nil
}

// resolveLines maps every submitted item key to its canonical catalog key,
// rejecting keys the catalog does not know for this house
func (s *RecalibrationService) resolveLines(resolver *stock.Resolver, houseCode string, items map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	lines := make(map[string]decimal.Decimal, len(items))
	for rawKey, qty := range items {
		res := resolver.ResolveItemKey(rawKey)
		if !res.Resolved {
			return nil, shared.NewDomainError("UNKNOWN_ITEM", fmt.Sprintf("No catalog item matches %q", rawKey))
		}
		item := resolver.Snapshot().ItemByKey(res.Canonical)
		if !item.AppliesTo(houseCode) {
			return nil, shared.NewDomainError("ITEM_NOT_TRACKED", fmt.Sprintf("Item %q is not tracked by house %s", res.Canonical, houseCode))
		}
		lines[res.Canonical] = lines[res.Canonical].Add(qty)
	}
	return lines, nil
}

// publishEvents publishes domain events from the aggregate
func (s *RecalibrationService) publishEvents(ctx context.Context, r *stock.Recalibration) {
	if s.eventBus == nil {
		return
	}

	for _, event := range r.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	r.ClearDomainEvents()
}
