package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductionHouseRepository implements ProductionHouseRepository using GORM
type GormProductionHouseRepository struct {
	db *gorm.DB
}

// NewGormProductionHouseRepository creates a new GormProductionHouseRepository
func NewGormProductionHouseRepository(db *gorm.DB) *GormProductionHouseRepository {
	return &GormProductionHouseRepository{db: db}
}

// FindByID finds a house by its ID
func (r *GormProductionHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductionHouse, error) {
	var model models.ProductionHouseModel
	if err := r.db.WithContext(ctx).
		Preload("Aliases").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a house by its canonical code
func (r *GormProductionHouseRepository) FindByCode(ctx context.Context, code string) (*catalog.ProductionHouse, error) {
	var model models.ProductionHouseModel
	if err := r.db.WithContext(ctx).
		Preload("Aliases").
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all houses
func (r *GormProductionHouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductionHouse, error) {
	var houseModels []models.ProductionHouseModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductionHouseModel{}).Preload("Aliases"),
		filter,
	)

	if err := query.Find(&houseModels).Error; err != nil {
		return nil, err
	}
	houses := make([]catalog.ProductionHouse, len(houseModels))
	for i, model := range houseModels {
		houses[i] = *model.ToDomain()
	}
	return houses, nil
}

// Save creates or updates a house with its aliases in a transaction
func (r *GormProductionHouseRepository) Save(ctx context.Context, house *catalog.ProductionHouse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ProductionHouseModelFromDomain(house)
		aliases := model.Aliases
		model.Aliases = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		// Aliases are append-only value rows; replace the set wholesale
		if err := tx.Where("house_id = ?", house.ID).
			Delete(&models.HouseAliasModel{}).Error; err != nil {
			return err
		}
		for i := range aliases {
			if err := tx.Create(&aliases[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts houses matching the filter
func (r *GormProductionHouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductionHouseModel{})
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", searchPattern, searchPattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a house with the given code exists
func (r *GormProductionHouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductionHouseModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies common filter options to a query
func (r *GormProductionHouseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, HouseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}
