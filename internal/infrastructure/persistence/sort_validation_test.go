package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty defaults to DESC", "", "DESC"},
		{"asc lowercase", "asc", "ASC"},
		{"ASC uppercase", "ASC", "ASC"},
		{"asc with whitespace", "  asc  ", "ASC"},
		{"desc", "desc", "DESC"},
		{"invalid defaults to DESC", "sideways", "DESC"},
		{"injection attempt defaults to DESC", "ASC; DROP TABLE items", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("allows whitelisted fields", func(t *testing.T) {
		assert.Equal(t, "code", ValidateSortField("code", HouseSortFields, "created_at"))
		assert.Equal(t, "effective_date", ValidateSortField("effective_date", RecalibrationSortFields, "created_at"))
		assert.Equal(t, "delivered_at", ValidateSortField("delivered_at", DeliveryRecordSortFields, "created_at"))
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("password", HouseSortFields, "created_at"))
		assert.Equal(t, "date", ValidateSortField("1; DELETE FROM production_records", ProductionRecordSortFields, "date"))
	})

	t.Run("empty input falls back to default", func(t *testing.T) {
		assert.Equal(t, "key", ValidateSortField("", ItemSortFields, "key"))
		assert.Equal(t, "key", ValidateSortField("   ", ItemSortFields, "key"))
	})
}
