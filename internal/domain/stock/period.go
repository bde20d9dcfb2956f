package stock

import "time"

// DefaultTimezoneOffset is the accounting timezone offset used when none is
// configured. Periods are calendar months in a single fixed offset; the host
// timezone is never consulted.
const DefaultTimezoneOffset = "+05:30"

// Period is a calendar-month accounting window.
// Start is the first instant of the month and End the last nanosecond of it,
// both in the calendar's reference timezone.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if t falls within the period (inclusive both ends)
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Calendar derives accounting periods in a fixed reference timezone
type Calendar struct {
	loc *time.Location
}

// NewCalendar creates a calendar anchored to the given reference timezone
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = DefaultLocation()
	}
	return &Calendar{loc: loc}
}

// DefaultLocation returns the fixed UTC+05:30 reference timezone
func DefaultLocation() *time.Location {
	return time.FixedZone("UTC+05:30", 5*3600+30*60)
}

// ParseOffset builds a fixed timezone from an offset string such as
// "+05:30" or "-07:00"
func ParseOffset(offset string) (*time.Location, error) {
	t, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, err
	}
	_, secs := t.Zone()
	return time.FixedZone("UTC"+offset, secs), nil
}

// Location returns the calendar's reference timezone
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// CurrentPeriod returns the calendar month containing now
func (c *Calendar) CurrentPeriod(now time.Time) Period {
	local := now.In(c.loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// PreviousPeriod returns the calendar month immediately before the given
// period, crossing the year boundary when needed
func (c *Calendar) PreviousPeriod(p Period) Period {
	start := p.Start.AddDate(0, -1, 0)
	return Period{
		Start: start,
		End:   p.Start.Add(-time.Nanosecond),
	}
}

// DayOf truncates a timestamp to the start of its calendar day in the
// reference timezone
func (c *Calendar) DayOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// EndOfDay returns the last nanosecond of the calendar day containing t
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	return c.DayOf(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// IsFirstDayOf returns true if t falls on the first calendar day of the
// period. A committed count dated day 1 is a full reset; any later day is a
// mid-period correction.
func (c *Calendar) IsFirstDayOf(p Period, t time.Time) bool {
	return c.DayOf(t).Equal(p.Start)
}

// SameDay returns true if a and b fall on the same calendar day in the
// reference timezone
func (c *Calendar) SameDay(a, b time.Time) bool {
	return c.DayOf(a).Equal(c.DayOf(b))
}
