package stock

import (
	"context"
	"fmt"

	"github.com/prodstock/backend/internal/domain/shared"
)

// AnchorKind classifies the authoritative snapshot found for a period
type AnchorKind string

const (
	// AnchorNone means no committed recalibration exists in the period;
	// the opening balance rolls forward from the previous period
	AnchorNone AnchorKind = "NONE"
	// AnchorFullReset means a committed count dated the first day of the
	// period replaces the opening balance outright
	AnchorFullReset AnchorKind = "FULL_RESET"
	// AnchorMidPeriod means a committed count dated after day 1 splits the
	// period's aggregation at the count
	AnchorMidPeriod AnchorKind = "MID_PERIOD"
)

// Anchor is the result of anchor selection for a (house, period) pair
type Anchor struct {
	Kind     AnchorKind
	Snapshot *Recalibration // nil when Kind == AnchorNone
}

// AnchorSelector finds the authoritative recalibration snapshot for a
// location and period and classifies it
type AnchorSelector struct {
	recalibrations RecalibrationRepository
	cal            *Calendar
}

// NewAnchorSelector creates a new AnchorSelector
func NewAnchorSelector(recalibrations RecalibrationRepository, cal *Calendar) *AnchorSelector {
	return &AnchorSelector{
		recalibrations: recalibrations,
		cal:            cal,
	}
}

// Select finds the committed snapshot governing the given period for the
// house addressed by any of houseRefs (canonical code plus aliases).
//
// Among all committed snapshots inside the period the one with the latest
// effective date wins; snapshots on the same day tie-break on creation time,
// most recently created first (last-committed-wins).
func (s *AnchorSelector) Select(ctx context.Context, houseRefs []string, period Period) (Anchor, error) {
	snaps, err := s.recalibrations.FindCommittedInRange(ctx, houseRefs, period.Start, period.End)
	if err != nil {
		return Anchor{}, fmt.Errorf("%w: recalibrations for %v: %v", shared.ErrDataUnavailable, houseRefs, err)
	}

	var chosen *Recalibration
	for i := range snaps {
		snap := &snaps[i]
		if !snap.IsCommitted() || !period.Contains(snap.EffectiveDate) {
			continue
		}
		if chosen == nil {
			chosen = snap
			continue
		}
		chosenDay := s.cal.DayOf(chosen.EffectiveDate)
		snapDay := s.cal.DayOf(snap.EffectiveDate)
		switch {
		case snapDay.After(chosenDay):
			chosen = snap
		case snapDay.Equal(chosenDay) && snap.CreatedAt.After(chosen.CreatedAt):
			chosen = snap
		}
	}

	if chosen == nil {
		return Anchor{Kind: AnchorNone}, nil
	}
	if s.cal.IsFirstDayOf(period, chosen.EffectiveDate) {
		return Anchor{Kind: AnchorFullReset, Snapshot: chosen}, nil
	}
	return Anchor{Kind: AnchorMidPeriod, Snapshot: chosen}, nil
}
