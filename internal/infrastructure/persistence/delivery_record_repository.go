package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/prodstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDeliveryRecordRepository implements DeliveryRecordRepository using GORM
type GormDeliveryRecordRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRecordRepository creates a new GormDeliveryRecordRepository
func NewGormDeliveryRecordRepository(db *gorm.DB) *GormDeliveryRecordRepository {
	return &GormDeliveryRecordRepository{db: db}
}

// FindByID finds a delivery record by its ID
func (r *GormDeliveryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.DeliveryRecord, error) {
	var model models.DeliveryRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDeliveredInRange finds DELIVERED records whose origin reference is any
// of the given refs and whose effective timestamp falls in [from, to].
// COALESCE mirrors DeliveryRecord.EffectiveTime: delivered, then requested,
// then created. Exact window boundaries are re-applied by the aggregator.
func (r *GormDeliveryRecordRepository) FindDeliveredInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]stock.DeliveryRecord, error) {
	if len(houseRefs) == 0 {
		return []stock.DeliveryRecord{}, nil
	}
	var recordModels []models.DeliveryRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("origin_ref IN ? AND status = ?", houseRefs, stock.DeliveryStatusDelivered).
		Where("COALESCE(delivered_at, requested_at, created_at) >= ?", from).
		Where("COALESCE(delivered_at, requested_at, created_at) <= ?", to).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]stock.DeliveryRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// FindByHouseRefs finds delivery records for the given refs
func (r *GormDeliveryRecordRepository) FindByHouseRefs(ctx context.Context, houseRefs []string, filter shared.Filter) ([]stock.DeliveryRecord, error) {
	if len(houseRefs) == 0 {
		return []stock.DeliveryRecord{}, nil
	}
	var recordModels []models.DeliveryRecordModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DeliveryRecordModel{}).
			Preload("Lines").
			Where("origin_ref IN ?", houseRefs),
		filter,
	)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]stock.DeliveryRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Create creates a new delivery record with its lines in a transaction
func (r *GormDeliveryRecordRepository) Create(ctx context.Context, record *stock.DeliveryRecord) error {
	model := models.DeliveryRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing record. Lines are immutable after creation.
func (r *GormDeliveryRecordRepository) Save(ctx context.Context, record *stock.DeliveryRecord) error {
	model := models.DeliveryRecordModelFromDomain(record)
	model.Lines = nil
	return r.db.WithContext(ctx).Save(model).Error
}

// CountByHouseRefs counts delivery records for the given refs
func (r *GormDeliveryRecordRepository) CountByHouseRefs(ctx context.Context, houseRefs []string) (int64, error) {
	if len(houseRefs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DeliveryRecordModel{}).
		Where("origin_ref IN ?", houseRefs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies common filter options to a query
func (r *GormDeliveryRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DeliveryRecordSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}
