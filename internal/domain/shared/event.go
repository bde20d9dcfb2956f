package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened in the domain and is worth
// telling other components about, such as a recalibration submission
// or approval.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent holds the envelope fields common to every event.
// Concrete events embed it and add their own payload.
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewBaseDomainEvent stamps a fresh event envelope for the given
// aggregate.
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID { return e.ID }

func (e *BaseDomainEvent) EventType() string { return e.Type }

func (e *BaseDomainEvent) OccurredAt() time.Time { return e.Timestamp }

// AggregateID identifies the aggregate that raised the event.
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.AggID }

// AggregateType names the kind of aggregate, for example "Recalibration".
func (e *BaseDomainEvent) AggregateType() string { return e.AggType }
