// Package detail derives the display-ready attendance of one day from the raw
// punches, an approved adjustment and the day's leave and work pattern.
package detail

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
)

const (
	DefaultWorkingMinutes   = 480
	OvertimeBaselineMinutes = 480
	HalfDayMinutes          = 240

	DefaultStartMinutes = 9 * 60
	DefaultEndMinutes   = 18 * 60

	nightStartMinutes = 22 * 60
	nightEndMinutes   = 5 * 60
)

// Effective returns the record used for metrics: the raw record with an
// approved adjustment's New* fields laid over it. Anything but an approved
// adjustment leaves the raw record (possibly nil) untouched.
func Effective(dateKey string, raw *attendance.Record, adj *adjustment.Request) *attendance.Record {
	if adj == nil || !adj.Status.IsApproved() {
		return raw
	}

	eff := attendance.Record{Date: dateKey, EmployeeID: adj.EmployeeID}
	if raw != nil {
		eff = *raw
	}
	if adj.NewClockIn != nil {
		eff.ClockIn = adj.NewClockIn
	}
	if adj.NewClockOut != nil {
		eff.ClockOut = adj.NewClockOut
	}
	if adj.NewBreakMinutes != nil {
		eff.BreakMinutes = adj.NewBreakMinutes
	}
	return &eff
}

// Compute derives the AttendanceDetail of one date. It is a pure function of
// its inputs.
func Compute(dateKey string, raw *attendance.Record, leaveReq *leave.Request, adj *adjustment.Request, pattern *schedule.PatternRequest) attendance.Detail {
	d := attendance.Detail{DateKey: dateKey}

	if pattern != nil && !pattern.Status.IsApproved() {
		pattern = nil
	}
	eff := Effective(dateKey, raw, adj)

	d.HasAttendance = eff.HasPunches()
	d.IsFullDayLeave = leaveReq != nil && leaveReq.IsFullDayPaidLeave()
	d.IsHalfDayLeave = leaveReq != nil && leaveReq.IsHalfDayPaidLeave()

	// An approved pattern's working minutes apply as stored, zero included.
	patternMinutes := DefaultWorkingMinutes
	if pattern != nil {
		patternMinutes = pattern.WorkingMinutes
	}

	switch {
	case d.IsFullDayLeave:
		setMinutes(&d.WorkingDisplay, &d.WorkingMinutes, patternMinutes)

	case eff.IsComplete() && d.IsHalfDayLeave:
		computeHalfDay(&d, dateKey, eff, leaveReq.TimeUnit, pattern, patternMinutes)

	case eff.IsComplete():
		computeRegular(&d, dateKey, eff, pattern)

	default:
		if eff != nil && eff.WorkHoursInMinutes != nil {
			setMinutes(&d.WorkingDisplay, &d.WorkingMinutes, *eff.WorkHoursInMinutes)
		}
	}

	return d
}

func computeRegular(d *attendance.Detail, dateKey string, eff *attendance.Record, pattern *schedule.PatternRequest) {
	start, end := *eff.ClockIn, *eff.ClockOut
	breakMinutes := breakOf(eff)

	startMin, endMin := DefaultStartMinutes, DefaultEndMinutes
	if pattern != nil {
		if m, ok := pattern.StartMinutes(); ok {
			startMin = m
		}
		if m, ok := pattern.EndMinutes(); ok {
			endMin = m
		}
	}
	expectedStart, expectedEnd := expectedWindow(dateKey, start, startMin, endMin)

	fillClock(d, start, end, breakMinutes)

	// Lateness rounds down, early leave rounds up.
	setMinutes(&d.LateDisplay, &d.LateMinutes, positive(floorMinutes(start.Sub(expectedStart))))
	setMinutes(&d.EarlyLeaveDisplay, &d.EarlyLeaveMinutes, positive(ceilMinutes(expectedEnd.Sub(end))))

	worked := workedMinutes(start, end, breakMinutes)
	setMinutes(&d.WorkingDisplay, &d.WorkingMinutes, worked)
	setMinutes(&d.OvertimeDisplay, &d.OvertimeMinutes, positive(worked-OvertimeBaselineMinutes))
	setMinutes(&d.NightDisplay, &d.NightMinutes, NightMinutes(start, end, breakMinutes))
}

func computeHalfDay(d *attendance.Detail, dateKey string, eff *attendance.Record, unit leave.TimeUnit, pattern *schedule.PatternRequest, patternMinutes int) {
	start, end := *eff.ClockIn, *eff.ClockOut
	breakMinutes := breakOf(eff)
	required := positive(patternMinutes - HalfDayMinutes)

	startMin, endMin := DefaultStartMinutes, DefaultEndMinutes
	if pattern != nil {
		if m, ok := pattern.StartMinutes(); ok {
			startMin = m
		}
		if m, ok := pattern.EndMinutes(); ok {
			endMin = m
		}
	}
	patternStart, patternEnd := expectedWindow(dateKey, start, startMin, endMin)

	var expectedStart, expectedEnd time.Time
	if unit == leave.TimeUnitHalfAM {
		expectedEnd = patternEnd
		expectedStart = expectedEnd.Add(-time.Duration(required) * time.Minute)
	} else {
		expectedStart = patternStart
		expectedEnd = expectedStart.Add(time.Duration(required) * time.Minute)
	}

	fillClock(d, start, end, breakMinutes)

	setMinutes(&d.LateDisplay, &d.LateMinutes, positive(ceilMinutes(start.Sub(expectedStart))))
	setMinutes(&d.EarlyLeaveDisplay, &d.EarlyLeaveMinutes, positive(ceilMinutes(expectedEnd.Sub(end))))

	working := workedMinutes(start, end, breakMinutes) + HalfDayMinutes
	setMinutes(&d.WorkingDisplay, &d.WorkingMinutes, working)
	setMinutes(&d.OvertimeDisplay, &d.OvertimeMinutes, positive(working-patternMinutes))
	setMinutes(&d.NightDisplay, &d.NightMinutes, NightMinutes(start, end, breakMinutes))
}

// NightMinutes is the overlap of [start, end] with the 22:00-05:00 windows in
// start's location. Break time is taken from the daytime part of the shift
// first; only the remainder reduces night minutes.
func NightMinutes(start, end time.Time, breakMinutes int) int {
	if !end.After(start) {
		return 0
	}
	loc := start.Location()
	overlap := 0
	first := datekey.FromTime(start).AddDays(-1)
	last := datekey.FromTime(end.In(loc))
	for day := first; !day.After(last); day = day.AddDays(1) {
		winStart := day.At(nightStartMinutes, loc)
		winEnd := day.AddDays(1).At(nightEndMinutes, loc)
		overlap += overlapMinutes(start, end, winStart, winEnd)
	}

	span := floorMinutes(end.Sub(start))
	daytime := span - overlap
	excess := positive(breakMinutes - daytime)
	return positive(overlap - excess)
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	s, e := aStart, aEnd
	if bStart.After(s) {
		s = bStart
	}
	if bEnd.Before(e) {
		e = bEnd
	}
	if !e.After(s) {
		return 0
	}
	return floorMinutes(e.Sub(s))
}

// expectedWindow places the expected start/end on the date in the location
// of the actual start. An end at or before the start belongs to the next day.
func expectedWindow(dateKey string, actualStart time.Time, startMin, endMin int) (time.Time, time.Time) {
	loc := actualStart.Location()
	day, ok := datekey.Parse(dateKey)
	if !ok {
		day = datekey.FromTime(actualStart)
	}
	s := day.At(startMin, loc)
	e := day.At(endMin, loc)
	if !e.After(s) {
		e = e.Add(24 * time.Hour)
	}
	return s, e
}

func fillClock(d *attendance.Detail, start, end time.Time, breakMinutes int) {
	d.ClockInDisplay = datekey.FormatClock(start)
	d.ClockOutDisplay = datekey.FormatClock(end)
	d.BreakDisplay = datekey.FormatMinutes(breakMinutes)
}

func workedMinutes(start, end time.Time, breakMinutes int) int {
	return positive(floorMinutes(end.Sub(start)) - breakMinutes)
}

func breakOf(r *attendance.Record) int {
	if r.BreakMinutes == nil || *r.BreakMinutes < 0 {
		return 0
	}
	return *r.BreakMinutes
}

func setMinutes(display *string, raw **int, minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	v := minutes
	*raw = &v
	*display = datekey.FormatMinutes(minutes)
}

func floorMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes()))
}

func ceilMinutes(d time.Duration) int {
	return int(math.Ceil(d.Minutes()))
}

func positive(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
