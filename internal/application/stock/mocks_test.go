package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotLoader is a mock implementation of catalog.SnapshotLoader
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

// MockRecalibrationRepository is a mock implementation of stock.RecalibrationRepository
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

// MockEventBus is a mock implementation of shared.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	m.Called(handler, eventTypes)
}

func (m *MockEventBus) Unsubscribe(handler shared.EventHandler) {
	m.Called(handler)
}

func (m *MockEventBus) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventBus) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
