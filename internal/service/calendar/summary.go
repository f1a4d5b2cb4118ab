package calendar

import (
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/shopspring/decimal"
)

var halfDay = decimal.New(5, -1)

// Summarize totals the in-month cells of a built view. Paid leave only counts
// on working days: a full day is 1, a half day 0.5.
func Summarize(mc *MonthContext, cells []calendar.Cell, details map[string]attendance.Detail) calendar.Summary {
	agg := mc.Aggregate()
	s := calendar.Summary{
		PaidLeaveDays:   decimal.Zero,
		PendingByFamily: make(map[calendar.Family]int),
		SourceFailures:  len(agg.Failures),
	}

	for _, c := range cells {
		if !c.InMonth {
			continue
		}
		if !c.IsNonWorkingDay {
			s.WorkingDays++
			if l := agg.LeaveOn(c.Date); l != nil {
				switch {
				case l.IsFullDayPaidLeave():
					s.PaidLeaveDays = s.PaidLeaveDays.Add(decimal.NewFromInt(1))
				case l.IsHalfDayPaidLeave():
					s.PaidLeaveDays = s.PaidLeaveDays.Add(halfDay)
				}
			}
		}

		d, ok := details[c.Date]
		if !ok {
			continue
		}
		if d.HasAttendance {
			s.AttendedDays++
		}
		s.WorkingMinutes += value(d.WorkingMinutes)
		s.OvertimeMinutes += value(d.OvertimeMinutes)
		s.NightMinutes += value(d.NightMinutes)
		if value(d.LateMinutes) > 0 {
			s.LateCount++
		}
		if value(d.EarlyLeaveMinutes) > 0 {
			s.EarlyLeaveCount++
		}
	}

	s.WorkingDisplay = datekey.FormatMinutes(s.WorkingMinutes)
	s.OvertimeDisplay = datekey.FormatMinutes(s.OvertimeMinutes)
	s.NightDisplay = datekey.FormatMinutes(s.NightMinutes)

	for _, r := range agg.LeaveRequests {
		countPending(s.PendingByFamily, calendar.FamilyLeave, r.Status)
	}
	for _, r := range agg.AdjustmentRequests {
		countPending(s.PendingByFamily, calendar.FamilyAdjustment, r.Status)
	}
	for _, r := range agg.PatternRequests {
		countPending(s.PendingByFamily, calendar.FamilyWorkPattern, r.Status)
	}
	for _, r := range agg.HolidayRequests {
		countPending(s.PendingByFamily, calendar.FamilyHoliday, r.Status)
	}

	return s
}

func countPending(counts map[calendar.Family]int, family calendar.Family, status workflow.Status) {
	if status == workflow.StatusPending {
		counts[family]++
	}
}

func value(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
