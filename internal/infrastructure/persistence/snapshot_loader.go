package persistence

import (
	"context"

	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSnapshotLoader implements catalog.SnapshotLoader by reading the full
// house and item catalogs in one transaction, so a stock computation resolves
// identifiers against a single consistent catalog state.
type GormSnapshotLoader struct {
	db *gorm.DB
}

// NewGormSnapshotLoader creates a new GormSnapshotLoader
func NewGormSnapshotLoader(db *gorm.DB) *GormSnapshotLoader {
	return &GormSnapshotLoader{db: db}
}

// LoadSnapshot loads the current house and item catalogs
func (l *GormSnapshotLoader) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	snapshot := &catalog.Snapshot{}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var houseModels []models.ProductionHouseModel
		if err := tx.Preload("Aliases").
			Order("code ASC").
			Find(&houseModels).Error; err != nil {
			return err
		}
		snapshot.Houses = make([]catalog.ProductionHouse, len(houseModels))
		for i, model := range houseModels {
			snapshot.Houses[i] = *model.ToDomain()
		}

		var itemModels []models.ItemModel
		if err := tx.Order("key ASC").Find(&itemModels).Error; err != nil {
			return err
		}
		snapshot.Items = make([]catalog.Item, len(itemModels))
		for i, model := range itemModels {
			snapshot.Items[i] = *model.ToDomain()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
