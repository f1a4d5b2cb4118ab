package calendar

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/service/detail"
)

// MonthContext holds the loaded sources of one employee-month and the
// per-date detail cache derived from them. Every Reload bumps the version and
// drops the cache. A MonthContext is owned by a single pass at a time and is
// not safe for concurrent use.
type MonthContext struct {
	EmployeeID string
	Month      datekey.Month

	version    int64
	aggregate  calendar.Aggregate
	attendance map[string]attendance.Record
	custom     map[string]string

	details map[string]attendance.Detail
}

func NewMonthContext(employeeID string, m datekey.Month) *MonthContext {
	return &MonthContext{
		EmployeeID: employeeID,
		Month:      m,
		aggregate:  calendar.NewAggregate(employeeID, m.Year, m.Month),
		attendance: make(map[string]attendance.Record),
		custom:     make(map[string]string),
		details:    make(map[string]attendance.Detail),
	}
}

// Reload replaces every source collection. Records and custom holidays
// outside the month or with malformed dates are skipped.
func (c *MonthContext) Reload(agg calendar.Aggregate, records []attendance.Record, customs []holiday.Custom) int64 {
	c.version++
	c.aggregate = agg
	c.details = make(map[string]attendance.Detail)

	c.attendance = make(map[string]attendance.Record, len(records))
	for _, r := range records {
		d, ok := datekey.Parse(r.Date)
		if !ok {
			slog.Debug("skipping attendance record with malformed date",
				"employee_id", c.EmployeeID, "date", r.Date)
			continue
		}
		if !c.Month.Contains(d) {
			continue
		}
		c.attendance[d.Key()] = r
	}

	c.custom = make(map[string]string, len(customs))
	for _, h := range customs {
		d, ok := datekey.Parse(h.HolidayDate)
		if !ok {
			slog.Debug("skipping custom holiday with malformed date",
				"employee_id", c.EmployeeID, "date", h.HolidayDate)
			continue
		}
		if !c.Month.Contains(d) {
			continue
		}
		c.custom[d.Key()] = h.HolidayType
	}

	return c.version
}

func (c *MonthContext) Version() int64 {
	return c.version
}

func (c *MonthContext) Aggregate() calendar.Aggregate {
	return c.aggregate
}

// Record returns the raw attendance of dateKey, or nil.
func (c *MonthContext) Record(dateKey string) *attendance.Record {
	if r, ok := c.attendance[dateKey]; ok {
		return &r
	}
	return nil
}

// CustomHoliday returns the configured label of dateKey.
func (c *MonthContext) CustomHoliday(dateKey string) (string, bool) {
	label, ok := c.custom[dateKey]
	return label, ok
}

// Effective returns the raw record merged with an approved adjustment.
func (c *MonthContext) Effective(dateKey string) *attendance.Record {
	return detail.Effective(dateKey, c.Record(dateKey), c.aggregate.AdjustmentOn(dateKey))
}

// Detail returns the cached detail of dateKey, computing it on first use.
func (c *MonthContext) Detail(dateKey string) attendance.Detail {
	if d, ok := c.details[dateKey]; ok {
		return d
	}
	d := detail.Compute(
		dateKey,
		c.Record(dateKey),
		c.aggregate.LeaveOn(dateKey),
		c.aggregate.AdjustmentOn(dateKey),
		c.aggregate.PatternOn(dateKey),
	)
	c.details[dateKey] = d
	return d
}

// Details computes every in-month day and returns a copy of the cache.
func (c *MonthContext) Details() map[string]attendance.Detail {
	out := make(map[string]attendance.Detail, c.Month.Last().Day)
	for _, d := range c.Month.Days() {
		key := d.Key()
		out[key] = c.Detail(key)
	}
	return out
}

// EffectiveRecords returns the effective record of every in-month day that
// has one.
func (c *MonthContext) EffectiveRecords() map[string]attendance.Record {
	out := make(map[string]attendance.Record)
	for _, d := range c.Month.Days() {
		key := d.Key()
		if r := c.Effective(key); r != nil {
			out[key] = *r
		}
	}
	return out
}
