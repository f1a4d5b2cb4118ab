// Package holiday computes the Japanese national holiday calendar.
//
// CalendarOf derives a single year from the rules in force since 2020
// (Happy Monday days, equinox approximation, substitute and citizen's
// holidays, the 2020/2021 Olympic moves). Calendar bounds lookups to a
// configured year range; outside it every date is an ordinary day.
package holiday

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
)

const (
	// Rules below are only valid inside this range.
	MinSupportedYear = 2020
	MaxSupportedYear = 2099
)

const (
	nameSubstitute = "振替休日"
	nameCitizens   = "国民の休日"
)

// Calendar is an immutable lookup over a precomputed year range.
type Calendar struct {
	minYear int
	maxYear int
	days    map[datekey.Date]string
	byYear  map[int][]datekey.Date
}

// NewCalendar precomputes [minYear, maxYear], clamped to the supported range.
func NewCalendar(minYear, maxYear int) *Calendar {
	if minYear < MinSupportedYear {
		minYear = MinSupportedYear
	}
	if maxYear > MaxSupportedYear {
		maxYear = MaxSupportedYear
	}
	c := &Calendar{
		minYear: minYear,
		maxYear: maxYear,
		days:    make(map[datekey.Date]string),
		byYear:  make(map[int][]datekey.Date),
	}
	for y := minYear; y <= maxYear; y++ {
		holidays := CalendarOf(y)
		dates := make([]datekey.Date, 0, len(holidays))
		for d, name := range holidays {
			c.days[d] = name
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		c.byYear[y] = dates
	}
	return c
}

// IsHoliday reports whether d is a national holiday. Dates outside the
// configured range are never holidays.
func (c *Calendar) IsHoliday(d datekey.Date) bool {
	_, ok := c.days[d]
	return ok
}

// Name returns the holiday name for d.
func (c *Calendar) Name(d datekey.Date) (string, bool) {
	name, ok := c.days[d]
	return name, ok
}

// HolidaysForYear returns the holidays of year in date order, or nil when the
// year is outside the configured range.
func (c *Calendar) HolidaysForYear(year int) []datekey.Date {
	dates := c.byYear[year]
	if dates == nil {
		return nil
	}
	out := make([]datekey.Date, len(dates))
	copy(out, dates)
	return out
}

// Range returns the configured year bounds.
func (c *Calendar) Range() (int, int) {
	return c.minYear, c.maxYear
}

// CalendarOf computes the national holidays of year. It returns an empty map
// for years the rules do not cover.
func CalendarOf(year int) map[datekey.Date]string {
	h := make(map[datekey.Date]string)
	if year < MinSupportedYear || year > MaxSupportedYear {
		return h
	}
	add := func(m time.Month, day int, name string) {
		h[datekey.New(year, m, day)] = name
	}

	add(time.January, 1, "元日")
	h[nthMonday(year, time.January, 2)] = "成人の日"
	add(time.February, 11, "建国記念の日")
	add(time.February, 23, "天皇誕生日")
	add(time.March, vernalEquinoxDay(year), "春分の日")
	add(time.April, 29, "昭和の日")
	add(time.May, 3, "憲法記念日")
	add(time.May, 4, "みどりの日")
	add(time.May, 5, "こどもの日")

	switch year {
	case 2020:
		add(time.July, 23, "海の日")
		add(time.July, 24, "スポーツの日")
		add(time.August, 10, "山の日")
	case 2021:
		add(time.July, 22, "海の日")
		add(time.July, 23, "スポーツの日")
		add(time.August, 8, "山の日")
	default:
		h[nthMonday(year, time.July, 3)] = "海の日"
		add(time.August, 11, "山の日")
		h[nthMonday(year, time.October, 2)] = "スポーツの日"
	}

	h[nthMonday(year, time.September, 3)] = "敬老の日"
	add(time.September, autumnalEquinoxDay(year), "秋分の日")
	add(time.November, 3, "文化の日")
	add(time.November, 23, "勤労感謝の日")

	base := sortedDates(h)

	// A weekday sandwiched between two holidays becomes a holiday.
	for _, d := range base {
		between, next := d.AddDays(1), d.AddDays(2)
		if _, ok := h[next]; !ok {
			continue
		}
		if _, ok := h[between]; ok || between.Weekday() == time.Sunday {
			continue
		}
		h[between] = nameCitizens
	}

	// A holiday on Sunday moves to the next day that is not a holiday.
	for _, d := range sortedDates(h) {
		if d.Weekday() != time.Sunday {
			continue
		}
		sub := d.AddDays(1)
		for {
			if _, ok := h[sub]; !ok {
				break
			}
			sub = sub.AddDays(1)
		}
		h[sub] = nameSubstitute
	}

	return h
}

func nthMonday(year int, month time.Month, n int) datekey.Date {
	first := datekey.New(year, month, 1)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return first.AddDays(offset + (n-1)*7)
}

func vernalEquinoxDay(year int) int {
	y := year - 1980
	return int(20.8431 + 0.242194*float64(y) - float64(y/4))
}

func autumnalEquinoxDay(year int) int {
	y := year - 1980
	return int(23.2488 + 0.242194*float64(y) - float64(y/4))
}

func sortedDates(h map[datekey.Date]string) []datekey.Date {
	dates := make([]datekey.Date, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
