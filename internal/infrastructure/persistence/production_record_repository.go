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

// GormProductionRecordRepository implements ProductionRecordRepository using GORM
type GormProductionRecordRepository struct {
	db *gorm.DB
}

// NewGormProductionRecordRepository creates a new GormProductionRecordRepository
func NewGormProductionRecordRepository(db *gorm.DB) *GormProductionRecordRepository {
	return &GormProductionRecordRepository{db: db}
}

// FindByID finds a production record by its ID
func (r *GormProductionRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.ProductionRecord, error) {
	var model models.ProductionRecordModel
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

// FindApprovedInRange finds approved production records whose house reference
// is any of the given refs and whose production day falls in [from, to]
func (r *GormProductionRecordRepository) FindApprovedInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]stock.ProductionRecord, error) {
	if len(houseRefs) == 0 {
		return []stock.ProductionRecord{}, nil
	}
	var recordModels []models.ProductionRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("house_ref IN ? AND status = ? AND date >= ? AND date <= ?",
			houseRefs, stock.ApprovalStatusApproved, from, to).
		Order("date ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]stock.ProductionRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// FindByHouseRefs finds production records for the given refs
func (r *GormProductionRecordRepository) FindByHouseRefs(ctx context.Context, houseRefs []string, filter shared.Filter) ([]stock.ProductionRecord, error) {
	if len(houseRefs) == 0 {
		return []stock.ProductionRecord{}, nil
	}
	var recordModels []models.ProductionRecordModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductionRecordModel{}).
			Preload("Lines").
			Where("house_ref IN ?", houseRefs),
		filter,
	)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]stock.ProductionRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Create creates a new production record with its lines in a transaction
func (r *GormProductionRecordRepository) Create(ctx context.Context, record *stock.ProductionRecord) error {
	model := models.ProductionRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing record. Lines are immutable after creation, so
// only the record row is written.
func (r *GormProductionRecordRepository) Save(ctx context.Context, record *stock.ProductionRecord) error {
	model := models.ProductionRecordModelFromDomain(record)
	model.Lines = nil
	return r.db.WithContext(ctx).Save(model).Error
}

// CountByHouseRefs counts production records for the given refs
func (r *GormProductionRecordRepository) CountByHouseRefs(ctx context.Context, houseRefs []string) (int64, error) {
	if len(houseRefs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductionRecordModel{}).
		Where("house_ref IN ?", houseRefs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies common filter options to a query
func (r *GormProductionRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductionRecordSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}
