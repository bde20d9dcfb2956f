package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/shared"
)

// Aggregate type constant for Recalibration
const AggregateTypeRecalibration = "Recalibration"

// Recalibration event type constants
const (
	EventTypeRecalibrationSubmitted = "RecalibrationSubmitted"
	EventTypeRecalibrationApproved  = "RecalibrationApproved"
	EventTypeRecalibrationRejected  = "RecalibrationRejected"
)

// RecalibrationSubmittedEvent is raised when a physical count is submitted
type RecalibrationSubmittedEvent struct {
	shared.BaseDomainEvent
	RecalibrationID uuid.UUID `json:"recalibration_id"`
	HouseRef        string    `json:"house_ref"`
	EffectiveDate   time.Time `json:"effective_date"`
	ItemCount       int       `json:"item_count"`
	SubmittedBy     string    `json:"submitted_by"`
}

// NewRecalibrationSubmittedEvent creates a new RecalibrationSubmittedEvent
func NewRecalibrationSubmittedEvent(r *Recalibration) *RecalibrationSubmittedEvent {
	return &RecalibrationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecalibrationSubmitted, AggregateTypeRecalibration, r.ID),
		RecalibrationID: r.ID,
		HouseRef:        r.HouseRef,
		EffectiveDate:   r.EffectiveDate,
		ItemCount:       len(r.Lines),
		SubmittedBy:     r.SubmittedBy,
	}
}

// EventType returns the event type name
func (e *RecalibrationSubmittedEvent) EventType() string {
	return EventTypeRecalibrationSubmitted
}

// RecalibrationApprovedEvent is raised when a snapshot is committed
type RecalibrationApprovedEvent struct {
	shared.BaseDomainEvent
	RecalibrationID uuid.UUID `json:"recalibration_id"`
	HouseRef        string    `json:"house_ref"`
	EffectiveDate   time.Time `json:"effective_date"`
	ReviewedBy      string    `json:"reviewed_by"`
}

// NewRecalibrationApprovedEvent creates a new RecalibrationApprovedEvent
func NewRecalibrationApprovedEvent(r *Recalibration) *RecalibrationApprovedEvent {
	return &RecalibrationApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecalibrationApproved, AggregateTypeRecalibration, r.ID),
		RecalibrationID: r.ID,
		HouseRef:        r.HouseRef,
		EffectiveDate:   r.EffectiveDate,
		ReviewedBy:      r.ReviewedBy,
	}
}

// EventType returns the event type name
func (e *RecalibrationApprovedEvent) EventType() string {
	return EventTypeRecalibrationApproved
}

// RecalibrationRejectedEvent is raised when a snapshot is discarded
type RecalibrationRejectedEvent struct {
	shared.BaseDomainEvent
	RecalibrationID uuid.UUID `json:"recalibration_id"`
	HouseRef        string    `json:"house_ref"`
	EffectiveDate   time.Time `json:"effective_date"`
	ReviewedBy      string    `json:"reviewed_by"`
	Reason          string    `json:"reason"`
}

// NewRecalibrationRejectedEvent creates a new RecalibrationRejectedEvent
func NewRecalibrationRejectedEvent(r *Recalibration) *RecalibrationRejectedEvent {
	return &RecalibrationRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecalibrationRejected, AggregateTypeRecalibration, r.ID),
		RecalibrationID: r.ID,
		HouseRef:        r.HouseRef,
		EffectiveDate:   r.EffectiveDate,
		ReviewedBy:      r.ReviewedBy,
		Reason:          r.ReviewNote,
	}
}

// EventType returns the event type name
func (e *RecalibrationRejectedEvent) EventType() string {
	return EventTypeRecalibrationRejected
}
