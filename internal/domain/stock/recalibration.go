package stock

import (
	"fmt"
	"time"

	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecalibrationStatus represents the commit status of a recalibration snapshot
type RecalibrationStatus string

const (
	RecalibrationStatusPending  RecalibrationStatus = "PENDING"
	RecalibrationStatusApproved RecalibrationStatus = "APPROVED"
	RecalibrationStatusRejected RecalibrationStatus = "REJECTED"
)

// IsValid checks if the status is a valid RecalibrationStatus
func (s RecalibrationStatus) IsValid() bool {
	switch s {
	case RecalibrationStatusPending, RecalibrationStatusApproved, RecalibrationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of RecalibrationStatus
func (s RecalibrationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s RecalibrationStatus) CanTransitionTo(target RecalibrationStatus) bool {
	switch s {
	case RecalibrationStatusPending:
		return target == RecalibrationStatusApproved || target == RecalibrationStatusRejected
	case RecalibrationStatusApproved, RecalibrationStatusRejected:
		return false // terminal states
	}
	return false
}

// Recalibration is a manual physical count of a house's finished goods as of
// a specific calendar day. It is the aggregate root for recalibration
// operations.
//
// Only APPROVED snapshots are authoritative for the reconciliation engine.
// A second submission for the same house and day does not merge with or
// supersede the first at write time; the anchor selector's
// latest-created-wins rule decides which one governs.
type Recalibration struct {
	shared.BaseAggregateRoot
	HouseRef      string
	EffectiveDate time.Time // calendar day of the physical count
	Status        RecalibrationStatus
	Lines         map[string]decimal.Decimal // item key -> counted quantity
	SubmittedBy   string
	ReviewedBy    string
	ReviewNote    string
	ReviewedAt    *time.Time
}

// NewRecalibration creates a new pending recalibration snapshot
func NewRecalibration(houseRef string, effectiveDate time.Time, lines map[string]decimal.Decimal, submittedBy string) (*Recalibration, error) {
	if houseRef == "" {
		return nil, shared.NewDomainError("INVALID_HOUSE_REF", "House reference cannot be empty")
	}
	if effectiveDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Effective date cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_LINES", "Recalibration requires at least one counted item")
	}
	for key, qty := range lines {
		if key == "" {
			return nil, shared.NewDomainError("INVALID_ITEM_KEY", "Item key cannot be empty")
		}
		if qty.IsNegative() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
		}
	}

	r := &Recalibration{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HouseRef:          houseRef,
		EffectiveDate:     effectiveDate,
		Status:            RecalibrationStatusPending,
		Lines:             lines,
		SubmittedBy:       submittedBy,
	}

	r.AddDomainEvent(NewRecalibrationSubmittedEvent(r))

	return r, nil
}

// IsCommitted returns true if the snapshot is authoritative for stock reads
func (r *Recalibration) IsCommitted() bool {
	return r.Status == RecalibrationStatusApproved
}

// Approve commits the snapshot, making it eligible as a period anchor
func (r *Recalibration) Approve(reviewer, note string) error {
	if !r.Status.CanTransitionTo(RecalibrationStatusApproved) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition from %s to APPROVED", r.Status))
	}

	now := time.Now()
	r.Status = RecalibrationStatusApproved
	r.ReviewedBy = reviewer
	r.ReviewNote = note
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRecalibrationApprovedEvent(r))

	return nil
}

// Reject discards the snapshot
func (r *Recalibration) Reject(reviewer, reason string) error {
	if !r.Status.CanTransitionTo(RecalibrationStatusRejected) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition from %s to REJECTED", r.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	r.Status = RecalibrationStatusRejected
	r.ReviewedBy = reviewer
	r.ReviewNote = reason
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRecalibrationRejectedEvent(r))

	return nil
}

// MarkApprovedOnSubmit commits the snapshot at submission time, for callers
// whose role carries no approval workflow. The submitted event has already
// been recorded; this adds the approval transition on top.
func (r *Recalibration) MarkApprovedOnSubmit() error {
	return r.Approve(r.SubmittedBy, "auto-approved on submission")
}
