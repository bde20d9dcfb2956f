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

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByKey finds an item by its canonical key
func (r *GormItemRepository) FindByKey(ctx context.Context, key string) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all items
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	var itemModels []models.ItemModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ItemModel{}),
		filter,
	)

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.Item, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	model := models.ItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ItemModel{})
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(key) LIKE ? OR LOWER(display_name) LIKE ?", searchPattern, searchPattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByKey checks if an item with the given key exists
func (r *GormItemRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("key = ?", key).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies common filter options to a query
func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(key) LIKE ? OR LOWER(display_name) LIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "key")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}
