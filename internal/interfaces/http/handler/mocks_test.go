package handler

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// testCatalogSnapshot builds the small fixed catalog the handler tests run
// against: one house with an alias and a global plus a house-scoped item.
func testCatalogSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	house, err := catalog.NewProductionHouse("PH-001", "Andheri Kitchen")
	require.NoError(t, err)
	require.NoError(t, house.AddAlias("STORE-17"))

	chicken, err := catalog.NewItem("chicken", "Chicken", "packet", catalog.ItemScopeGlobal, "")
	require.NoError(t, err)
	paneer, err := catalog.NewItem("paneer", "Paneer", "packet", catalog.ItemScopeHouse, "PH-002")
	require.NoError(t, err)

	return &catalog.Snapshot{
		Houses: []catalog.ProductionHouse{*house},
		Items:  []catalog.Item{*chicken, *paneer},
	}
}

// MockHouseRepository implements catalog.ProductionHouseRepository for testing
type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductionHouse, error) {
	args := m.Called(ctx, id)
	if h := args.Get(0); h != nil {
		return h.(*catalog.ProductionHouse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHouseRepository) FindByCode(ctx context.Context, code string) (*catalog.ProductionHouse, error) {
	args := m.Called(ctx, code)
	if h := args.Get(0); h != nil {
		return h.(*catalog.ProductionHouse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductionHouse, error) {
	args := m.Called(ctx, filter)
	if hs := args.Get(0); hs != nil {
		return hs.([]catalog.ProductionHouse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHouseRepository) Save(ctx context.Context, house *catalog.ProductionHouse) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockItemRepository implements catalog.ItemRepository for testing
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*catalog.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepository) FindByKey(ctx context.Context, key string) (*catalog.Item, error) {
	args := m.Called(ctx, key)
	if i := args.Get(0); i != nil {
		return i.(*catalog.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	if is := args.Get(0); is != nil {
		return is.([]catalog.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockSnapshotLoader implements catalog.SnapshotLoader for testing
type MockSnapshotLoader struct {
	mock.Mock
}

func (m *MockSnapshotLoader) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	args := m.Called(ctx)
	if snap := args.Get(0); snap != nil {
		return snap.(*catalog.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRecalibrationRepository implements stock.RecalibrationRepository for testing
type MockRecalibrationRepository struct {
	mock.Mock
}

func (m *MockRecalibrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Recalibration, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*stock.Recalibration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecalibrationRepository) FindCommittedInRange(ctx context.Context, houseRefs []string, from, to time.Time) ([]stock.Recalibration, error) {
	args := m.Called(ctx, houseRefs, from, to)
	if rs := args.Get(0); rs != nil {
		return rs.([]stock.Recalibration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecalibrationRepository) FindByHouseRefs(ctx context.Context, houseRefs []string, status *stock.RecalibrationStatus, filter shared.Filter) ([]stock.Recalibration, error) {
	args := m.Called(ctx, houseRefs, status, filter)
	if rs := args.Get(0); rs != nil {
		return rs.([]stock.Recalibration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecalibrationRepository) Save(ctx context.Context, r *stock.Recalibration) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecalibrationRepository) CountByHouseRefs(ctx context.Context, houseRefs []string, status *stock.RecalibrationStatus) (int64, error) {
	args := m.Called(ctx, houseRefs, status)
	return args.Get(0).(int64), args.Error(1)
}

// empty record stores for stock read tests; engine arithmetic is covered in
// the domain package

type emptyProductionRepo struct{}

func (emptyProductionRepo) FindByID(context.Context, uuid.UUID) (*stock.ProductionRecord, error) {
	return nil, shared.ErrNotFound
}
func (emptyProductionRepo) FindApprovedInRange(context.Context, []string, time.Time, time.Time) ([]stock.ProductionRecord, error) {
	return nil, nil
}
func (emptyProductionRepo) FindByHouseRefs(context.Context, []string, shared.Filter) ([]stock.ProductionRecord, error) {
	return nil, nil
}
func (emptyProductionRepo) Create(context.Context, *stock.ProductionRecord) error { return nil }
func (emptyProductionRepo) Save(context.Context, *stock.ProductionRecord) error   { return nil }
func (emptyProductionRepo) CountByHouseRefs(context.Context, []string) (int64, error) {
	return 0, nil
}

type emptyDeliveryRepo struct{}

func (emptyDeliveryRepo) FindByID(context.Context, uuid.UUID) (*stock.DeliveryRecord, error) {
	return nil, shared.ErrNotFound
}
func (emptyDeliveryRepo) FindDeliveredInRange(context.Context, []string, time.Time, time.Time) ([]stock.DeliveryRecord, error) {
	return nil, nil
}
func (emptyDeliveryRepo) FindByHouseRefs(context.Context, []string, shared.Filter) ([]stock.DeliveryRecord, error) {
	return nil, nil
}
func (emptyDeliveryRepo) Create(context.Context, *stock.DeliveryRecord) error { return nil }
func (emptyDeliveryRepo) Save(context.Context, *stock.DeliveryRecord) error   { return nil }
func (emptyDeliveryRepo) CountByHouseRefs(context.Context, []string) (int64, error) {
	return 0, nil
}

type emptyRecalibrationRepo struct{}

func (emptyRecalibrationRepo) FindByID(context.Context, uuid.UUID) (*stock.Recalibration, error) {
	return nil, shared.ErrNotFound
}
func (emptyRecalibrationRepo) FindCommittedInRange(context.Context, []string, time.Time, time.Time) ([]stock.Recalibration, error) {
	return nil, nil
}
func (emptyRecalibrationRepo) FindByHouseRefs(context.Context, []string, *stock.RecalibrationStatus, shared.Filter) ([]stock.Recalibration, error) {
	return nil, nil
}
func (emptyRecalibrationRepo) Save(context.Context, *stock.Recalibration) error { return nil }
func (emptyRecalibrationRepo) CountByHouseRefs(context.Context, []string, *stock.RecalibrationStatus) (int64, error) {
	return 0, nil
}
