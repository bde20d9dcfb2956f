package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/shared"
)

// ProductionRecordRepository defines the interface for production record persistence
type ProductionRecordRepository interface {
	// FindByID finds a production record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionRecord, error)

	// FindApprovedInRange finds approved production records whose house
	// reference is any of the given refs and whose production day falls in
	// [from, to] inclusive
	FindApprovedInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]ProductionRecord, error)

	// FindByHouseRefs finds production records for the given refs
	FindByHouseRefs(ctx context.Context, houseRefs []string, filter shared.Filter) ([]ProductionRecord, error)

	// Create creates a new production record (append-only history)
	Create(ctx context.Context, record *ProductionRecord) error

	// Save updates an existing record (status transitions only)
	Save(ctx context.Context, record *ProductionRecord) error

	// CountByHouseRefs counts production records for the given refs
	CountByHouseRefs(ctx context.Context, houseRefs []string) (int64, error)
}

// DeliveryRecordRepository defines the interface for delivery record persistence
type DeliveryRecordRepository interface {
	// FindByID finds a delivery record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryRecord, error)

	// FindDeliveredInRange finds DELIVERED records whose origin reference is
	// any of the given refs and whose effective timestamp (delivered,
	// falling back to requested, then created) falls in [from, to].
	// Exact window boundaries are applied by the aggregator; this query only
	// needs to be no narrower than the requested range.
	FindDeliveredInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]DeliveryRecord, error)

	// FindByHouseRefs finds delivery records for the given refs
	FindByHouseRefs(ctx context.Context, houseRefs []string, filter shared.Filter) ([]DeliveryRecord, error)

	// Create creates a new delivery record
	Create(ctx context.Context, record *DeliveryRecord) error

	// Save updates an existing record
	Save(ctx context.Context, record *DeliveryRecord) error

	// CountByHouseRefs counts delivery records for the given refs
	CountByHouseRefs(ctx context.Context, houseRefs []string) (int64, error)
}

// RecalibrationRepository defines the interface for recalibration snapshot persistence
type RecalibrationRepository interface {
	// FindByID finds a recalibration by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Recalibration, error)

	// FindCommittedInRange finds APPROVED recalibrations whose house
	// reference is any of the given refs and whose effective date falls in
	// [from, to] inclusive. Passing the canonical code together with every
	// alias yields the union the anchor selector requires.
	FindCommittedInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]Recalibration, error)

	// FindByHouseRefs finds recalibrations for the given refs, optionally
	// filtered by status
	FindByHouseRefs(ctx context.Context, houseRefs []string, status *RecalibrationStatus, filter shared.Filter) ([]Recalibration, error)

	// Save creates or updates a recalibration
	Save(ctx context.Context, r *Recalibration) error

	// CountByHouseRefs counts recalibrations for the given refs, optionally
	// filtered by status
	CountByHouseRefs(ctx context.Context, houseRefs []string, status *RecalibrationStatus) (int64, error)
}
