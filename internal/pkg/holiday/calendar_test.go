package holiday

import (
	"testing"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(dates []datekey.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Key())
	}
	return out
}

func TestCalendarOf2025(t *testing.T) {
	cal := NewCalendar(2025, 2025)
	want := []string{
		"2025-01-01", "2025-01-13", "2025-02-11", "2025-02-23", "2025-02-24",
		"2025-03-20", "2025-04-29", "2025-05-03", "2025-05-04", "2025-05-05",
		"2025-05-06", "2025-07-21", "2025-08-11", "2025-09-15", "2025-09-23",
		"2025-10-13", "2025-11-03", "2025-11-23", "2025-11-24",
	}
	assert.Equal(t, want, keys(cal.HolidaysForYear(2025)))

	name, ok := cal.Name(datekey.MustParse("2025-02-24"))
	require.True(t, ok)
	assert.Equal(t, "振替休日", name)
}

func TestCitizensHoliday(t *testing.T) {
	h := CalendarOf(2026)
	assert.Equal(t, "国民の休日", h[datekey.MustParse("2026-09-22")])
	assert.Equal(t, "敬老の日", h[datekey.MustParse("2026-09-21")])
	assert.Equal(t, "秋分の日", h[datekey.MustParse("2026-09-23")])
	assert.Equal(t, "振替休日", h[datekey.MustParse("2026-05-06")])
}

func TestOlympicYears(t *testing.T) {
	h2020 := CalendarOf(2020)
	assert.Equal(t, "スポーツの日", h2020[datekey.MustParse("2020-07-24")])
	assert.Equal(t, "山の日", h2020[datekey.MustParse("2020-08-10")])

	h2021 := CalendarOf(2021)
	assert.Equal(t, "山の日", h2021[datekey.MustParse("2021-08-08")])
	assert.Equal(t, "振替休日", h2021[datekey.MustParse("2021-08-09")])
	_, ok := h2021[datekey.MustParse("2021-10-11")]
	assert.False(t, ok)
}

func TestOutsideRangeHasNoHolidays(t *testing.T) {
	cal := NewCalendar(2024, 2026)
	assert.False(t, cal.IsHoliday(datekey.MustParse("2023-01-01")))
	assert.False(t, cal.IsHoliday(datekey.MustParse("2027-01-01")))
	assert.True(t, cal.IsHoliday(datekey.MustParse("2026-01-01")))
	assert.Nil(t, cal.HolidaysForYear(2030))
	assert.Empty(t, CalendarOf(1999))
}

func TestRangeIsClamped(t *testing.T) {
	cal := NewCalendar(1990, 3000)
	lo, hi := cal.Range()
	assert.Equal(t, MinSupportedYear, lo)
	assert.Equal(t, MaxSupportedYear, hi)
}
