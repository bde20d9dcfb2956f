package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/shared"
)

// In-memory fakes backing the engine tests. They filter only by house ref
// and status; exact window boundaries are the aggregator's job and the
// tests verify them through it.

func refMatches(refs []string, ref string) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

type fakeProductionRepo struct {
	records []ProductionRecord
	err     error
}

func (f *fakeProductionRepo) FindByID(_ context.Context, id uuid.UUID) (*ProductionRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductionRepo) FindApprovedInRange(_ context.Context, houseRefs []string, _, _ time.Time) ([]ProductionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []ProductionRecord
	for _, rec := range f.records {
		if rec.Status == ApprovalStatusApproved && refMatches(houseRefs, rec.HouseRef) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeProductionRepo) FindByHouseRefs(_ context.Context, houseRefs []string, _ shared.Filter) ([]ProductionRecord, error) {
	var out []ProductionRecord
	for _, rec := range f.records {
		if refMatches(houseRefs, rec.HouseRef) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeProductionRepo) Create(_ context.Context, record *ProductionRecord) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeProductionRepo) Save(_ context.Context, record *ProductionRecord) error {
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i] = *record
			return nil
		}
	}
	return shared.ErrNotFound
}

func (f *fakeProductionRepo) CountByHouseRefs(_ context.Context, houseRefs []string) (int64, error) {
	var n int64
	for _, rec := range f.records {
		if refMatches(houseRefs, rec.HouseRef) {
			n++
		}
	}
	return n, nil
}

type fakeDeliveryRepo struct {
	records []DeliveryRecord
	err     error
}

func (f *fakeDeliveryRepo) FindByID(_ context.Context, id uuid.UUID) (*DeliveryRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeDeliveryRepo) FindDeliveredInRange(_ context.Context, houseRefs []string, _, _ time.Time) ([]DeliveryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []DeliveryRecord
	for _, rec := range f.records {
		if rec.Status == DeliveryStatusDelivered && refMatches(houseRefs, rec.OriginRef) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) FindByHouseRefs(_ context.Context, houseRefs []string, _ shared.Filter) ([]DeliveryRecord, error) {
	var out []DeliveryRecord
	for _, rec := range f.records {
		if refMatches(houseRefs, rec.OriginRef) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) Create(_ context.Context, record *DeliveryRecord) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeDeliveryRepo) Save(_ context.Context, record *DeliveryRecord) error {
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i] = *record
			return nil
		}
	}
	return shared.ErrNotFound
}

func (f *fakeDeliveryRepo) CountByHouseRefs(_ context.Context, houseRefs []string) (int64, error) {
	var n int64
	for _, rec := range f.records {
		if refMatches(houseRefs, rec.OriginRef) {
			n++
		}
	}
	return n, nil
}

type fakeRecalibrationRepo struct {
	records []Recalibration
	err     error
}

func (f *fakeRecalibrationRepo) FindByID(_ context.Context, id uuid.UUID) (*Recalibration, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRecalibrationRepo) FindCommittedInRange(_ context.Context, houseRefs []string, from, to time.Time) ([]Recalibration, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Recalibration
	for _, rec := range f.records {
		if !rec.IsCommitted() || !refMatches(houseRefs, rec.HouseRef) {
			continue
		}
		if rec.EffectiveDate.Before(from) || rec.EffectiveDate.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecalibrationRepo) FindByHouseRefs(_ context.Context, houseRefs []string, status *RecalibrationStatus, _ shared.Filter) ([]Recalibration, error) {
	var out []Recalibration
	for _, rec := range f.records {
		if !refMatches(houseRefs, rec.HouseRef) {
			continue
		}
		if status != nil && rec.Status != *status {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecalibrationRepo) Save(_ context.Context, r *Recalibration) error {
	for i := range f.records {
		if f.records[i].ID == r.ID {
			f.records[i] = *r
			return nil
		}
	}
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeRecalibrationRepo) CountByHouseRefs(_ context.Context, houseRefs []string, status *RecalibrationStatus) (int64, error) {
	var n int64
	for _, rec := range f.records {
		if !refMatches(houseRefs, rec.HouseRef) {
			continue
		}
		if status != nil && rec.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}
