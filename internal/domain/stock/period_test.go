package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_CurrentPeriod(t *testing.T) {
	cal := NewCalendar(DefaultLocation())

	t.Run("mid month", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 10, 30, 0, 0, cal.Location())
		p := cal.CurrentPeriod(now)

		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, cal.Location()), p.Start)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, cal.Location()).Add(-time.Nanosecond), p.End)
		assert.True(t, p.Contains(now))
	})

	t.Run("uses the reference timezone, not the host timezone", func(t *testing.T) {
		// 2026-01-31 20:00 UTC is already 2026-02-01 01:30 in UTC+05:30
		now := time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC)
		p := cal.CurrentPeriod(now)

		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, cal.Location()), p.Start)
	})

	t.Run("first instant of month belongs to it", func(t *testing.T) {
		now := time.Date(2026, 7, 1, 0, 0, 0, 0, cal.Location())
		p := cal.CurrentPeriod(now)

		assert.True(t, p.Contains(now))
		assert.Equal(t, time.July, p.Start.Month())
	})
}

func TestCalendar_PreviousPeriod(t *testing.T) {
	cal := NewCalendar(DefaultLocation())

	t.Run("previous month", func(t *testing.T) {
		p := cal.CurrentPeriod(time.Date(2026, 3, 14, 0, 0, 0, 0, cal.Location()))
		prev := cal.PreviousPeriod(p)

		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, cal.Location()), prev.Start)
		assert.Equal(t, p.Start.Add(-time.Nanosecond), prev.End)
	})

	t.Run("january rolls back to december of the prior year", func(t *testing.T) {
		p := cal.CurrentPeriod(time.Date(2026, 1, 10, 0, 0, 0, 0, cal.Location()))
		prev := cal.PreviousPeriod(p)

		assert.Equal(t, 2025, prev.Start.Year())
		assert.Equal(t, time.December, prev.Start.Month())
	})
}

func TestCalendar_Days(t *testing.T) {
	cal := NewCalendar(DefaultLocation())

	t.Run("DayOf truncates in the reference timezone", func(t *testing.T) {
		ts := time.Date(2026, 5, 9, 23, 45, 0, 0, cal.Location())
		assert.Equal(t, time.Date(2026, 5, 9, 0, 0, 0, 0, cal.Location()), cal.DayOf(ts))
	})

	t.Run("IsFirstDayOf", func(t *testing.T) {
		p := cal.CurrentPeriod(time.Date(2026, 5, 20, 0, 0, 0, 0, cal.Location()))

		assert.True(t, cal.IsFirstDayOf(p, time.Date(2026, 5, 1, 18, 0, 0, 0, cal.Location())))
		assert.False(t, cal.IsFirstDayOf(p, time.Date(2026, 5, 2, 0, 0, 0, 0, cal.Location())))
	})

	t.Run("EndOfDay", func(t *testing.T) {
		ts := time.Date(2026, 5, 9, 8, 0, 0, 0, cal.Location())
		end := cal.EndOfDay(ts)

		assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, cal.Location()).Add(-time.Nanosecond), end)
	})
}

func TestParseOffset(t *testing.T) {
	t.Run("parses positive offset", func(t *testing.T) {
		loc, err := ParseOffset("+05:30")
		require.NoError(t, err)

		_, secs := time.Now().In(loc).Zone()
		assert.Equal(t, 5*3600+30*60, secs)
	})

	t.Run("parses negative offset", func(t *testing.T) {
		loc, err := ParseOffset("-07:00")
		require.NoError(t, err)

		_, secs := time.Now().In(loc).Zone()
		assert.Equal(t, -7*3600, secs)
	})

	t.Run("rejects malformed offset", func(t *testing.T) {
		_, err := ParseOffset("0530")
		require.Error(t, err)
	})
}
