package stock

import (
	"time"

	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the review status of a production record
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// IsValid checks if the status is a valid ApprovalStatus
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// DeliveryStatus represents the fulfilment status of an outbound delivery
type DeliveryStatus string

const (
	DeliveryStatusRequested DeliveryStatus = "REQUESTED"
	DeliveryStatusPacked    DeliveryStatus = "PACKED"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusCancelled DeliveryStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusRequested, DeliveryStatusPacked, DeliveryStatusInTransit,
		DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// ProductionRecord is one production event logged by a house.
// Item keys in Lines are raw, pre-resolution identifiers; only APPROVED
// records are aggregable, and approved records are immutable history as far
// as the reconciliation engine is concerned.
type ProductionRecord struct {
	shared.BaseEntity
	HouseRef string         // canonical code or alias, resolved on read
	Date     time.Time      // calendar day of production
	Status   ApprovalStatus //
	Lines    map[string]decimal.Decimal
}

// NewProductionRecord creates a new pending production record
func NewProductionRecord(houseRef string, date time.Time, lines map[string]decimal.Decimal) (*ProductionRecord, error) {
	if houseRef == "" {
		return nil, shared.NewDomainError("INVALID_HOUSE_REF", "House reference cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_LINES", "Production record requires at least one line")
	}
	for key, qty := range lines {
		if key == "" {
			return nil, shared.NewDomainError("INVALID_ITEM_KEY", "Item key cannot be empty")
		}
		if qty.IsNegative() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Produced quantity cannot be negative")
		}
	}

	return &ProductionRecord{
		BaseEntity: shared.NewBaseEntity(),
		HouseRef:   houseRef,
		Date:       date,
		Status:     ApprovalStatusPending,
		Lines:      lines,
	}, nil
}

// Approve marks the record as approved and aggregable
func (r *ProductionRecord) Approve() error {
	if r.Status != ApprovalStatusPending {
		return shared.ErrInvalidState
	}
	r.Status = ApprovalStatusApproved
	r.UpdatedAt = time.Now()
	return nil
}

// Reject marks the record as rejected
func (r *ProductionRecord) Reject() error {
	if r.Status != ApprovalStatusPending {
		return shared.ErrInvalidState
	}
	r.Status = ApprovalStatusRejected
	r.UpdatedAt = time.Now()
	return nil
}

// DeliveryRecord is one outbound shipment from a house to a consuming site.
// OriginRef carries whatever identifier the shipping system used, which may
// be a house alias rather than the canonical code. Only DELIVERED records
// count toward stock.
type DeliveryRecord struct {
	shared.BaseEntity
	OriginRef   string
	Status      DeliveryStatus
	DeliveredAt *time.Time
	RequestedAt *time.Time
	Lines       map[string]decimal.Decimal
}

// EffectiveTime returns the timestamp used for window comparisons:
// delivery time when known, falling back to request time, then to the
// record's creation time.
func (d *DeliveryRecord) EffectiveTime() time.Time {
	if d.DeliveredAt != nil {
		return *d.DeliveredAt
	}
	if d.RequestedAt != nil {
		return *d.RequestedAt
	}
	return d.CreatedAt
}

// IsDelivered returns true if the delivery has been fulfilled
func (d *DeliveryRecord) IsDelivered() bool {
	return d.Status == DeliveryStatusDelivered
}
