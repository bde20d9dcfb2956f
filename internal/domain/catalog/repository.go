package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/shared"
)

// ProductionHouseRepository defines the interface for house catalog persistence
type ProductionHouseRepository interface {
	// FindByID finds a house by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionHouse, error)

	// FindByCode finds a house by its canonical code
	FindByCode(ctx context.Context, code string) (*ProductionHouse, error)

	// FindAll finds all houses
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionHouse, error)

	// Save creates or updates a house
	Save(ctx context.Context, house *ProductionHouse) error

	// Count counts houses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a house with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ItemRepository defines the interface for item catalog persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByKey finds an item by its canonical key
	FindByKey(ctx context.Context, key string) (*Item, error)

	// FindAll finds all items
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByKey checks if an item with the given key exists
	ExistsByKey(ctx context.Context, key string) (bool, error)
}

// SnapshotLoader loads a consistent point-in-time catalog snapshot
type SnapshotLoader interface {
	// LoadSnapshot loads the current house and item catalogs
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}
