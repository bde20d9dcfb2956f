// Package models holds the GORM table mappings. Domain entities stay
// free of ORM tags; each model here maps one table and converts to and
// from its domain counterpart, so the repositories never hand a gorm
// struct across the domain boundary.
//
// base.go carries the shared columns (BaseModel, AggregateModel),
// catalog.go the production house and item tables, and stock.go the
// production, delivery and recalibration record tables.
package models
