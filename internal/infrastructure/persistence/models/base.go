package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/shared"
)

// BaseModel holds the columns every table shares. The concrete models
// embed it and translate it to the domain's BaseEntity through the
// helpers below.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) domainEntity() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *BaseModel) applyEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel adds the optimistic-lock version column for tables
// backing aggregate roots.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func (m *AggregateModel) domainAggregate() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.domainEntity(),
		Version:    m.Version,
	}
}

func (m *AggregateModel) applyAggregate(a shared.BaseAggregateRoot) {
	m.applyEntity(a.BaseEntity)
	m.Version = a.Version
}
