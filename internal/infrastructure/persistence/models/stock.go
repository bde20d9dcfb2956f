package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// ProductionRecordModel is the persistence model for a production record.
// Line quantities live in their own table keyed by item.
type ProductionRecordModel struct {
	BaseModel
	HouseRef string                `gorm:"type:varchar(64);not null;index"`
	Date     time.Time             `gorm:"not null;index"`
	Status   stock.ApprovalStatus  `gorm:"type:varchar(16);not null;default:'PENDING';index"`
	Lines    []ProductionLineModel `gorm:"foreignKey:RecordID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionRecordModel) TableName() string {
	return "production_records"
}

// ToDomain converts the persistence model to a domain ProductionRecord entity.
func (m *ProductionRecordModel) ToDomain() *stock.ProductionRecord {
	r := &stock.ProductionRecord{
		BaseEntity: m.domainEntity(),
		HouseRef:   m.HouseRef,
		Date:       m.Date,
		Status:     m.Status,
		Lines:      make(map[string]decimal.Decimal, len(m.Lines)),
	}
	for _, line := range m.Lines {
		r.Lines[line.ItemKey] = line.Quantity
	}
	return r
}

// FromDomain populates the persistence model from a domain ProductionRecord entity.
func (m *ProductionRecordModel) FromDomain(r *stock.ProductionRecord) {
	m.applyEntity(r.BaseEntity)
	m.HouseRef = r.HouseRef
	m.Date = r.Date
	m.Status = r.Status
	m.Lines = make([]ProductionLineModel, 0, len(r.Lines))
	for key, qty := range r.Lines {
		m.Lines = append(m.Lines, ProductionLineModel{
			ID:       uuid.New(),
			RecordID: r.ID,
			ItemKey:  key,
			Quantity: qty,
		})
	}
}

// ProductionRecordModelFromDomain creates a new persistence model from a domain ProductionRecord entity.
func ProductionRecordModelFromDomain(r *stock.ProductionRecord) *ProductionRecordModel {
	m := &ProductionRecordModel{}
	m.FromDomain(r)
	return m
}

// ProductionLineModel is one item line of a production record
type ProductionLineModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemKey  string          `gorm:"type:varchar(128);not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductionLineModel) TableName() string {
	return "production_record_lines"
}

// DeliveryRecordModel is the persistence model for a delivery record
type DeliveryRecordModel struct {
	BaseModel
	OriginRef   string               `gorm:"type:varchar(64);not null;index"`
	Status      stock.DeliveryStatus `gorm:"type:varchar(16);not null;index"`
	DeliveredAt *time.Time           `gorm:"index"`
	RequestedAt *time.Time
	Lines       []DeliveryLineModel  `gorm:"foreignKey:RecordID;references:ID"`
}

// TableName returns the table name for GORM
func (DeliveryRecordModel) TableName() string {
	return "delivery_records"
}

// ToDomain converts the persistence model to a domain DeliveryRecord entity.
func (m *DeliveryRecordModel) ToDomain() *stock.DeliveryRecord {
	r := &stock.DeliveryRecord{
		BaseEntity:  m.domainEntity(),
		OriginRef:   m.OriginRef,
		Status:      m.Status,
		DeliveredAt: m.DeliveredAt,
		RequestedAt: m.RequestedAt,
		Lines:       make(map[string]decimal.Decimal, len(m.Lines)),
	}
	for _, line := range m.Lines {
		r.Lines[line.ItemKey] = line.Quantity
	}
	return r
}

// FromDomain populates the persistence model from a domain DeliveryRecord entity.
func (m *DeliveryRecordModel) FromDomain(r *stock.DeliveryRecord) {
	m.applyEntity(r.BaseEntity)
	m.OriginRef = r.OriginRef
	m.Status = r.Status
	m.DeliveredAt = r.DeliveredAt
	m.RequestedAt = r.RequestedAt
	m.Lines = make([]DeliveryLineModel, 0, len(r.Lines))
	for key, qty := range r.Lines {
		m.Lines = append(m.Lines, DeliveryLineModel{
			ID:       uuid.New(),
			RecordID: r.ID,
			ItemKey:  key,
			Quantity: qty,
		})
	}
}

// DeliveryRecordModelFromDomain creates a new persistence model from a domain DeliveryRecord entity.
func DeliveryRecordModelFromDomain(r *stock.DeliveryRecord) *DeliveryRecordModel {
	m := &DeliveryRecordModel{}
	m.FromDomain(r)
	return m
}

// DeliveryLineModel is one item line of a delivery record
type DeliveryLineModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemKey  string          `gorm:"type:varchar(128);not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (DeliveryLineModel) TableName() string {
	return "delivery_record_lines"
}

// RecalibrationModel is the persistence model for the Recalibration aggregate root
type RecalibrationModel struct {
	AggregateModel
	HouseRef      string                    `gorm:"type:varchar(64);not null;index"`
	EffectiveDate time.Time                 `gorm:"not null;index"`
	Status        stock.RecalibrationStatus `gorm:"type:varchar(16);not null;default:'PENDING';index"`
	SubmittedBy   string                    `gorm:"type:varchar(255)"`
	ReviewedBy    string                    `gorm:"type:varchar(255)"`
	ReviewNote    string                    `gorm:"type:text"`
	ReviewedAt    *time.Time
	Lines         []RecalibrationLineModel  `gorm:"foreignKey:RecalibrationID;references:ID"`
}

// TableName returns the table name for GORM
func (RecalibrationModel) TableName() string {
	return "recalibrations"
}

// ToDomain converts the persistence model to a domain Recalibration entity.
func (m *RecalibrationModel) ToDomain() *stock.Recalibration {
	r := &stock.Recalibration{
		BaseAggregateRoot: m.domainAggregate(),
		HouseRef:          m.HouseRef,
		EffectiveDate:     m.EffectiveDate,
		Status:            m.Status,
		SubmittedBy:       m.SubmittedBy,
		ReviewedBy:        m.ReviewedBy,
		ReviewNote:        m.ReviewNote,
		ReviewedAt:        m.ReviewedAt,
		Lines:             make(map[string]decimal.Decimal, len(m.Lines)),
	}
	for _, line := range m.Lines {
		r.Lines[line.ItemKey] = line.Quantity
	}
	return r
}

// FromDomain populates the persistence model from a domain Recalibration entity.
func (m *RecalibrationModel) FromDomain(r *stock.Recalibration) {
	m.applyAggregate(r.BaseAggregateRoot)
	m.HouseRef = r.HouseRef
	m.EffectiveDate = r.EffectiveDate
	m.Status = r.Status
	m.SubmittedBy = r.SubmittedBy
	m.ReviewedBy = r.ReviewedBy
	m.ReviewNote = r.ReviewNote
	m.ReviewedAt = r.ReviewedAt
	m.Lines = make([]RecalibrationLineModel, 0, len(r.Lines))
	for key, qty := range r.Lines {
		m.Lines = append(m.Lines, RecalibrationLineModel{
			ID:              uuid.New(),
			RecalibrationID: r.ID,
			ItemKey:         key,
			Quantity:        qty,
		})
	}
}

// RecalibrationModelFromDomain creates a new persistence model from a domain Recalibration entity.
func RecalibrationModelFromDomain(r *stock.Recalibration) *RecalibrationModel {
	m := &RecalibrationModel{}
	m.FromDomain(r)
	return m
}

// RecalibrationLineModel is one counted item line of a recalibration snapshot
type RecalibrationLineModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecalibrationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemKey         string          `gorm:"type:varchar(128);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (RecalibrationLineModel) TableName() string {
	return "recalibration_lines"
}
