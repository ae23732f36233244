package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysInclusive(t *testing.T) {
	cases := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"friday to monday", date(2026, 3, 13), date(2026, 3, 16), 2},
		{"same weekday", date(2026, 3, 11), date(2026, 3, 11), 1},
		{"same saturday", date(2026, 3, 14), date(2026, 3, 14), 0},
		{"full week", date(2026, 3, 9), date(2026, 3, 15), 5},
		{"reversed", date(2026, 3, 16), date(2026, 3, 13), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, BusinessDaysInclusive(c.from, c.to))
		})
	}
}

func TestMonthDayCounts(t *testing.T) {
	// March 2026: starts Sunday, 31 days, Sundays 1, 8, 15, 22, 29
	m := date(2026, 3, 20)
	assert.Equal(t, 5, RestDaysInMonth(m))
	assert.Equal(t, 26, WorkingDaysInMonth(m))

	// February 2026: 28 days, Sundays 1, 8, 15, 22
	f := date(2026, 2, 1)
	assert.Equal(t, 4, RestDaysInMonth(f))
	assert.Equal(t, 24, WorkingDaysInMonth(f))
}

func TestDayHelpers(t *testing.T) {
	ts := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 3, 10), Day(ts))
	assert.True(t, SameDay(ts, date(2026, 3, 10)))
	assert.Equal(t, 30, DaysBetween(date(2026, 2, 8), date(2026, 3, 10)))
	assert.Equal(t, -1, DaysBetween(date(2026, 3, 10), date(2026, 3, 9)))
	assert.Equal(t, "2026-03", MonthKey(ts))

	d, err := ParseDay("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 10), d)
	_, err = ParseDay("10/03/2026")
	assert.Error(t, err)
}
