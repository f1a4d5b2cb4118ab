package businessday

import (
	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
)

// HolidayCalendar is the public holiday lookup. Dates outside its configured
// range are ordinary days.
type HolidayCalendar interface {
	IsHoliday(d datekey.Date) bool
}

// Result describes how a date resolves for one employee.
type Result struct {
	IsWorking       bool
	IsPublicHoliday bool
	IsWeekend       bool
	PatternApplied  bool
}

// IsNonWorking is the negation used by the calendar cells.
func (r Result) IsNonWorking() bool {
	return !r.IsWorking
}

type Resolver struct {
	holidays HolidayCalendar
}

func NewResolver(holidays HolidayCalendar) *Resolver {
	return &Resolver{holidays: holidays}
}

// Resolve decides whether d is a working day. Only an approved pattern
// overrides the weekday/holiday default; on a public holiday the pattern's
// ApplyHoliday flag decides alone.
func (r *Resolver) Resolve(d datekey.Date, pattern *schedule.PatternRequest) Result {
	res := Result{
		IsPublicHoliday: r.holidays != nil && r.holidays.IsHoliday(d),
		IsWeekend:       d.IsWeekend(),
	}

	if pattern == nil || !pattern.Status.IsApproved() {
		res.IsWorking = !res.IsWeekend && !res.IsPublicHoliday
		return res
	}

	res.PatternApplied = true
	if res.IsPublicHoliday {
		res.IsWorking = pattern.ApplyHoliday
		return res
	}
	res.IsWorking = pattern.WorksOn(d)
	return res
}
