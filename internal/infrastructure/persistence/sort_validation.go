package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// HouseSortFields contains allowed sort fields for production houses
var HouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"active":     true,
}

// ItemSortFields contains allowed sort fields for catalog items
var ItemSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"key":          true,
	"display_name": true,
	"scope":        true,
	"house_code":   true,
}

// ProductionRecordSortFields contains allowed sort fields for production records
var ProductionRecordSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"house_ref":  true,
	"date":       true,
	"status":     true,
}

// DeliveryRecordSortFields contains allowed sort fields for delivery records
var DeliveryRecordSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"origin_ref":   true,
	"status":       true,
	"delivered_at": true,
}

// RecalibrationSortFields contains allowed sort fields for recalibrations
var RecalibrationSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"house_ref":      true,
	"effective_date": true,
	"status":         true,
}
