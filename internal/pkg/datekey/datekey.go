// Package datekey provides a naive local calendar date and the helpers used to
// key per-day data ("YYYY-MM-DD") across the attendance engine.
//
// Dates carry no time zone. Sources deliver dates in several shapes (plain
// dates, timestamps, slash separated); Parse normalizes all of them to the
// calendar day as written.
package datekey

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical key format.
const Layout = "2006-01-02"

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var parseLayouts = []string{
	Layout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006/01/02",
	"2006/1/2",
	"20060102",
}

// New returns the normalized date, so New(2025, 1, 32) is 2025-02-01.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the wall-clock date of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse accepts any of the date shapes the sources are known to send.
// The second return value is false for empty or malformed input.
func Parse(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), true
		}
	}
	return Date{}, false
}

// MustParse panics on malformed input. Intended for tests and constants.
func MustParse(s string) Date {
	d, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("datekey: invalid date %q", s))
	}
	return d
}

// Key returns the canonical "YYYY-MM-DD" form.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string {
	return d.Key()
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At returns the instant minutes after midnight of d in loc. Values of 1440
// or more land on the following days.
func (d Date) At(minutes int, loc *time.Location) time.Time {
	return d.Time(loc).Add(time.Duration(minutes) * time.Minute)
}

func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// IsWeekend reports Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(u Date) int {
	switch {
	case d.Year != u.Year:
		return cmpInt(d.Year, u.Year)
	case d.Month != u.Month:
		return cmpInt(int(d.Month), int(u.Month))
	default:
		return cmpInt(d.Day, u.Day)
	}
}

func (d Date) Before(u Date) bool { return d.Compare(u) < 0 }
func (d Date) After(u Date) bool  { return d.Compare(u) > 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// First returns the first day of the month.
func (m Month) First() Date {
	return New(m.Year, m.Month, 1)
}

// Last returns the last day of the month.
func (m Month) Last() Date {
	return New(m.Year, m.Month+1, 0)
}

func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Days returns every day of the month in order.
func (m Month) Days() []Date {
	return m.Clip(m.First(), m.Last())
}

// Clip returns the days of the inclusive range [start, end] that fall inside
// the month. A reversed range yields nothing.
func (m Month) Clip(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}
	first, last := m.First(), m.Last()
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	var days []Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Key returns "YYYY-MM".
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Valid() bool {
	return m.Year > 0 && m.Month >= time.January && m.Month <= time.December
}

// FormatMinutes renders a minute count as "H:MM". Negative values render as
// "0:00".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// FormatClock renders the wall-clock time of t as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes after midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}
