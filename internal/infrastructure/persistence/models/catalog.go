package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/catalog"
)

// ProductionHouseModel is the persistence model for the ProductionHouse
// aggregate root. Aliases live in their own table so alias lookups can use
// an index instead of scanning serialized lists.
type ProductionHouseModel struct {
	AggregateModel
	Code    string            `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name    string            `gorm:"type:varchar(255);not null"`
	Active  bool              `gorm:"not null;default:true"`
	Aliases []HouseAliasModel `gorm:"foreignKey:HouseID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionHouseModel) TableName() string {
	return "production_houses"
}

// ToDomain converts the persistence model to a domain ProductionHouse entity.
func (m *ProductionHouseModel) ToDomain() *catalog.ProductionHouse {
	h := &catalog.ProductionHouse{
		BaseAggregateRoot: m.domainAggregate(),
		Code:              m.Code,
		Name:              m.Name,
		Active:            m.Active,
		AliasCodes:        make([]string, len(m.Aliases)),
	}
	for i, alias := range m.Aliases {
		h.AliasCodes[i] = alias.Alias
	}
	return h
}

// FromDomain populates the persistence model from a domain ProductionHouse entity.
func (m *ProductionHouseModel) FromDomain(h *catalog.ProductionHouse) {
	m.applyAggregate(h.BaseAggregateRoot)
	m.Code = h.Code
	m.Name = h.Name
	m.Active = h.Active
	m.Aliases = make([]HouseAliasModel, len(h.AliasCodes))
	for i, alias := range h.AliasCodes {
		m.Aliases[i] = HouseAliasModel{
			ID:        uuid.New(),
			HouseID:   h.ID,
			Alias:     alias,
			CreatedAt: time.Now(),
		}
	}
}

// ProductionHouseModelFromDomain creates a new persistence model from a domain ProductionHouse entity.
func ProductionHouseModelFromDomain(h *catalog.ProductionHouse) *ProductionHouseModel {
	m := &ProductionHouseModel{}
	m.FromDomain(h)
	return m
}

// HouseAliasModel is the persistence model for a house alias code
type HouseAliasModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	HouseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Alias     string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (HouseAliasModel) TableName() string {
	return "house_aliases"
}

// ItemModel is the persistence model for the Item entity.
type ItemModel struct {
	BaseModel
	Key         string            `gorm:"type:varchar(128);not null;uniqueIndex"`
	DisplayName string            `gorm:"type:varchar(255);not null"`
	Unit        string            `gorm:"type:varchar(32)"`
	Scope       catalog.ItemScope `gorm:"type:varchar(16);not null;default:'GLOBAL'"`
	HouseCode   string            `gorm:"type:varchar(64);index"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		BaseEntity:  m.domainEntity(),
		Key:         m.Key,
		DisplayName: m.DisplayName,
		Unit:        m.Unit,
		Scope:       m.Scope,
		HouseCode:   m.HouseCode,
	}
}

// FromDomain populates the persistence model from a domain Item entity.
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.applyEntity(i.BaseEntity)
	m.Key = i.Key
	m.DisplayName = i.DisplayName
	m.Unit = i.Unit
	m.Scope = i.Scope
	m.HouseCode = i.HouseCode
}

// ItemModelFromDomain creates a new persistence model from a domain Item entity.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}
