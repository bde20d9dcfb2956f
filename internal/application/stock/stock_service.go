package stock

import (
	"context"
	"time"

	"github.com/prodstock/backend/internal/domain/catalog"
	"github.com/prodstock/backend/internal/domain/stock"
)

// StockQueryService provides the derived-stock read path.
//
// Each query loads one catalog snapshot, binds a resolver to it and hands
// both to the reconciliation engine, so a single response reflects a single
// consistent catalog state. Nothing is persisted; repeated queries over
// unchanged records return identical statements.
type StockQueryService struct {
	snapshots catalog.SnapshotLoader
	engine    *stock.Engine
	suffixes  []string
}

// NewStockQueryService creates a new StockQueryService
func NewStockQueryService(snapshots catalog.SnapshotLoader, engine *stock.Engine, suffixes []string) *StockQueryService {
	return &StockQueryService{
		snapshots: snapshots,
		engine:    engine,
		suffixes:  suffixes,
	}
}

// GetStock computes the stock of the house addressed by houseRef.
// When query.AsOf is nil the computation runs as of now.
func (s *StockQueryService) GetStock(ctx context.Context, houseRef string, query StockQuery) (*StockStatementResponse, error) {
	asOf := time.Now()
	if query.AsOf != nil {
		asOf = *query.AsOf
	}
	asOf = asOf.In(s.engine.Calendar().Location())

	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	resolver := stock.NewResolver(snap, s.suffixes)

	stmt, err := s.engine.ComputeStock(ctx, resolver, houseRef, asOf)
	if err != nil {
		return nil, err
	}

	response := ToStockStatementResponse(stmt)
	return &response, nil
}
