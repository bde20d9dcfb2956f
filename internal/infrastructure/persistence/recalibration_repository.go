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

// GormRecalibrationRepository implements RecalibrationRepository using GORM
type GormRecalibrationRepository struct {
	db *gorm.DB
}

// NewGormRecalibrationRepository creates a new GormRecalibrationRepository
func NewGormRecalibrationRepository(db *gorm.DB) *GormRecalibrationRepository {
	return &GormRecalibrationRepository{db: db}
}

// FindByID finds a recalibration by its ID
func (r *GormRecalibrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Recalibration, error) {
	var model models.RecalibrationModel
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

// FindCommittedInRange finds APPROVED recalibrations whose house reference is
// any of the given refs and whose effective date falls in [from, to]
func (r *GormRecalibrationRepository) FindCommittedInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]stock.Recalibration, error) {
	if len(houseRefs) == 0 {
		return []stock.Recalibration{}, nil
	}
	var recalModels []models.RecalibrationModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("house_ref IN ? AND status = ? AND effective_date >= ? AND effective_date <= ?",
			houseRefs, stock.RecalibrationStatusApproved, from, to).
		Order("effective_date ASC, created_at ASC").
		Find(&recalModels).Error; err != nil {
		return nil, err
	}
	recals := make([]stock.Recalibration, len(recalModels))
	for i, model := range recalModels {
		recals[i] = *model.ToDomain()
	}
	return recals, nil
}

// FindByHouseRefs finds recalibrations for the given refs, optionally
// filtered by status
func (r *GormRecalibrationRepository) FindByHouseRefs(ctx context.Context, houseRefs []string, status *stock.RecalibrationStatus, filter shared.Filter) ([]stock.Recalibration, error) {
	if len(houseRefs) == 0 {
		return []stock.Recalibration{}, nil
	}
	query := r.db.WithContext(ctx).Model(&models.RecalibrationModel{}).
		Preload("Lines").
		Where("house_ref IN ?", houseRefs)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	query = r.applyFilter(query, filter)

	var recalModels []models.RecalibrationModel
	if err := query.Find(&recalModels).Error; err != nil {
		return nil, err
	}
	recals := make([]stock.Recalibration, len(recalModels))
	for i, model := range recalModels {
		recals[i] = *model.ToDomain()
	}
	return recals, nil
}

// Save creates or updates a recalibration with its lines in a transaction
func (r *GormRecalibrationRepository) Save(ctx context.Context, recal *stock.Recalibration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RecalibrationModelFromDomain(recal)
		lines := model.Lines
		model.Lines = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		// Counted lines never change after submission; replace wholesale so
		// a re-save after a status transition stays idempotent
		if err := tx.Where("recalibration_id = ?", recal.ID).
			Delete(&models.RecalibrationLineModel{}).Error; err != nil {
			return err
		}
		for i := range lines {
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountByHouseRefs counts recalibrations for the given refs, optionally
// filtered by status
func (r *GormRecalibrationRepository) CountByHouseRefs(ctx context.Context, houseRefs []string, status *stock.RecalibrationStatus) (int64, error) {
	if len(houseRefs) == 0 {
		return 0, nil
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RecalibrationModel{}).
		Where("house_ref IN ?", houseRefs)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies common filter options to a query
func (r *GormRecalibrationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RecalibrationSortFields, "effective_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}
