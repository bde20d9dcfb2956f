package catalog

import (
	"context"
	"fmt"

	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/domain/shared"
)

// SnapshotInvalidator drops any cached catalog read view. Writes must call
// it so stock reads and submission validation see new houses, aliases and
// items immediately instead of after the cache TTL.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context)
}

// CatalogService provides application services for house and item
// catalog maintenance
type CatalogService struct {
	houses    catalog.ProductionHouseRepository
	items     catalog.ItemRepository
	snapshots SnapshotInvalidator
}

// NewCatalogService creates a new CatalogService. snapshots may be nil when
// no snapshot cache is in front of the catalog.
func NewCatalogService(houses catalog.ProductionHouseRepository, items catalog.ItemRepository, snapshots SnapshotInvalidator) *CatalogService {
	return &CatalogService{
		houses:    houses,
		items:     items,
		snapshots: snapshots,
	}
}

func (s *CatalogService) invalidateSnapshot(ctx context.Context) {
	if s.snapshots != nil {
		s.snapshots.Invalidate(ctx)
	}
}

// ===================== House Methods =====================

// GetHouse retrieves a house by its canonical code
func (s *CatalogService) GetHouse(ctx context.Context, code string) (*HouseResponse, error) {
	h, err := s.houses.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToHouseResponse(h)
	return &response, nil
}

// ListHouses retrieves a paginated list of houses
func (s *CatalogService) ListHouses(ctx context.Context, filter ListFilter) ([]HouseResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	hs, err := s.houses.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.houses.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToHouseResponses(hs), total, nil
}

// CreateHouse registers a new production house
func (s *CatalogService) CreateHouse(ctx context.Context, req CreateHouseRequest) (*HouseResponse, error) {
	exists, err := s.houses.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_HOUSE", fmt.Sprintf("House %s already exists", req.Code))
	}

	h, err := catalog.NewProductionHouse(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	for _, alias := range req.Aliases {
		if err := h.AddAlias(alias); err != nil {
			return nil, err
		}
	}

	if err := s.houses.Save(ctx, h); err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)

	response := ToHouseResponse(h)
	return &response, nil
}

// AddAlias registers an alternate identifier for an existing house
func (s *CatalogService) AddAlias(ctx context.Context, code string, req AddAliasRequest) (*HouseResponse, error) {
	h, err := s.houses.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := h.AddAlias(req.Alias); err != nil {
		return nil, err
	}

	if err := s.houses.Save(ctx, h); err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)

	response := ToHouseResponse(h)
	return &response, nil
}

// ===================== Item Methods =====================

// GetItem retrieves an item by its canonical key
func (s *CatalogService) GetItem(ctx context.Context, key string) (*ItemResponse, error) {
	item, err := s.items.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// ListItems retrieves a paginated list of items
func (s *CatalogService) ListItems(ctx context.Context, filter ListFilter) ([]ItemResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	items, err := s.items.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.items.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToItemResponses(items), total, nil
}

// CreateItem registers a new catalog item. House-scoped items must name an
// existing house.
func (s *CatalogService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.items.ExistsByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_ITEM", fmt.Sprintf("Item %s already exists", req.Key))
	}

	scope := catalog.ItemScope(req.Scope)
	if scope == catalog.ItemScopeHouse {
		houseExists, err := s.houses.ExistsByCode(ctx, req.HouseCode)
		if err != nil {
			return nil, err
		}
		if !houseExists {
			return nil, shared.NewDomainError("UNKNOWN_HOUSE", fmt.Sprintf("No production house matches %q", req.HouseCode))
		}
	}

	item, err := catalog.NewItem(req.Key, req.DisplayName, req.Unit, scope, req.HouseCode)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)

	response := ToItemResponse(item)
	return &response, nil
}
