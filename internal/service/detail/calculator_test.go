package detail

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = time.FixedZone("JST", 9*60*60)

func at(day string, clock string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", day+" "+clock, tokyo)
	if err != nil {
		panic(err)
	}
	return &t
}

func intPtr(n int) *int { return &n }

func record(day, in, out string, breakMinutes int) *attendance.Record {
	r := &attendance.Record{EmployeeID: "emp-1", Date: day, BreakMinutes: intPtr(breakMinutes)}
	if in != "" {
		r.ClockIn = at(day, in)
	}
	if out != "" {
		r.ClockOut = at(day, out)
	}
	return r
}

func approvedPattern(start, end string, workingMinutes int) *schedule.PatternRequest {
	return &schedule.PatternRequest{
		ID:             "p-1",
		Status:         workflow.StatusApproved,
		StartTime:      start,
		EndTime:        end,
		WorkingMinutes: workingMinutes,
		Weekdays:       [7]bool{true, true, true, true, true, false, false},
	}
}

func paidLeave(unit leave.TimeUnit) *leave.Request {
	return &leave.Request{
		ID:        "l-1",
		StartDate: "2025-01-15",
		Status:    workflow.StatusApproved,
		LeaveType: leave.LeaveTypePaid,
		TimeUnit:  unit,
	}
}

func TestCompute_Idempotent(t *testing.T) {
	raw := record("2025-01-15", "08:55:00", "19:10:00", 60)
	p := approvedPattern("09:00", "18:00", 480)

	first := Compute("2025-01-15", raw, nil, nil, p)
	second := Compute("2025-01-15", raw, nil, nil, p)

	assert.Equal(t, first, second)
}

func TestCompute_FullDayLeaveBlanksEverything(t *testing.T) {
	raw := record("2025-01-15", "09:00:00", "18:00:00", 60)

	cases := []struct {
		name    string
		pattern *schedule.PatternRequest
		want    string
	}{
		{"default", nil, "8:00"},
		{"pattern", approvedPattern("10:00", "17:00", 360), "6:00"},
		{"pending pattern ignored", &schedule.PatternRequest{Status: workflow.StatusPending, WorkingMinutes: 360}, "8:00"},
		{"pattern with zero working minutes", approvedPattern("09:00", "09:00", 0), "0:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Compute("2025-01-15", raw, paidLeave(leave.TimeUnitFullDay), nil, tc.pattern)

			assert.True(t, d.IsFullDayLeave)
			assert.Empty(t, d.ClockInDisplay)
			assert.Empty(t, d.ClockOutDisplay)
			assert.Empty(t, d.BreakDisplay)
			assert.Empty(t, d.LateDisplay)
			assert.Empty(t, d.EarlyLeaveDisplay)
			assert.Empty(t, d.OvertimeDisplay)
			assert.Empty(t, d.NightDisplay)
			assert.Equal(t, tc.want, d.WorkingDisplay)
			assert.True(t, d.HasAttendance)
		})
	}
}

func TestCompute_HalfDayMorningLeave(t *testing.T) {
	raw := record("2025-01-15", "10:30:00", "18:00:00", 0)

	d := Compute("2025-01-15", raw, paidLeave(leave.TimeUnitHalfAM), nil, approvedPattern("09:00", "18:00", 480))

	assert.True(t, d.IsHalfDayLeave)
	assert.Equal(t, "10:30", d.ClockInDisplay)
	assert.Equal(t, "18:00", d.ClockOutDisplay)
	assert.Equal(t, "0:00", d.BreakDisplay)
	assert.Equal(t, "0:00", d.LateDisplay)
	assert.Equal(t, "0:00", d.EarlyLeaveDisplay)
	assert.Equal(t, "11:30", d.WorkingDisplay)
	assert.Equal(t, "3:30", d.OvertimeDisplay)
	assert.Equal(t, "0:00", d.NightDisplay)
}

func TestCompute_HalfDayAfternoonLeave(t *testing.T) {
	// Expected 09:00-13:00; arrives 09:00:20 (ceil -> 1 late), leaves 12:30.
	raw := record("2025-01-15", "09:00:20", "12:30:00", 0)

	d := Compute("2025-01-15", raw, paidLeave(leave.TimeUnitHalfPM), nil, nil)

	assert.Equal(t, "0:01", d.LateDisplay)
	assert.Equal(t, "0:30", d.EarlyLeaveDisplay)
	require.NotNil(t, d.WorkingMinutes)
	assert.Equal(t, 209+240, *d.WorkingMinutes)
	assert.Equal(t, "0:00", d.OvertimeDisplay)
}

func TestCompute_HalfDayWithIncompleteAttendance(t *testing.T) {
	raw := record("2025-01-15", "13:00:00", "", 0)
	raw.WorkHoursInMinutes = intPtr(0)

	d := Compute("2025-01-15", raw, paidLeave(leave.TimeUnitHalfAM), nil, nil)

	assert.True(t, d.IsHalfDayLeave)
	assert.True(t, d.HasAttendance)
	assert.Empty(t, d.ClockInDisplay)
	assert.Empty(t, d.LateDisplay)
	assert.Equal(t, "0:00", d.WorkingDisplay)
}

func TestCompute_RegularDayRoundingAsymmetry(t *testing.T) {
	// 30 seconds late rounds down to 0; 30 seconds early rounds up to 1.
	raw := record("2025-01-15", "09:00:30", "17:59:30", 60)

	d := Compute("2025-01-15", raw, nil, nil, nil)

	assert.Equal(t, "0:00", d.LateDisplay)
	assert.Equal(t, "0:01", d.EarlyLeaveDisplay)
	assert.Equal(t, "7:59", d.WorkingDisplay)
	assert.Equal(t, "0:00", d.OvertimeDisplay)
}

func TestCompute_RegularDayLateAndOvertime(t *testing.T) {
	raw := record("2025-01-15", "09:10:59", "21:00:00", 60)

	d := Compute("2025-01-15", raw, nil, nil, nil)

	assert.Equal(t, "0:10", d.LateDisplay)
	assert.Equal(t, "0:00", d.EarlyLeaveDisplay)
	// 11:49:01 span floors to 709 minutes, minus 60 break.
	assert.Equal(t, "10:49", d.WorkingDisplay)
	assert.Equal(t, "2:49", d.OvertimeDisplay)
}

func TestCompute_OvertimeBaselineIgnoresPattern(t *testing.T) {
	raw := record("2025-01-15", "10:00:00", "18:30:00", 30)

	d := Compute("2025-01-15", raw, nil, nil, approvedPattern("10:00", "17:00", 360))

	assert.Equal(t, "0:00", d.EarlyLeaveDisplay)
	assert.Equal(t, "0:00", d.LateDisplay)
	assert.Equal(t, "8:00", d.WorkingDisplay)
	assert.Equal(t, "0:00", d.OvertimeDisplay)
}

func TestCompute_NightShift(t *testing.T) {
	in := at("2025-01-15", "20:00:00")
	out := at("2025-01-16", "02:00:00")
	raw := &attendance.Record{Date: "2025-01-15", ClockIn: in, ClockOut: out, BreakMinutes: intPtr(60)}

	d := Compute("2025-01-15", raw, nil, nil, nil)

	assert.Equal(t, "5:00", d.WorkingDisplay)
	assert.Equal(t, "4:00", d.NightDisplay)
	assert.Equal(t, "11:00", d.LateDisplay)
	assert.Equal(t, "0:00", d.EarlyLeaveDisplay)
}

func TestNightMinutes(t *testing.T) {
	cases := []struct {
		name         string
		start, end   *time.Time
		breakMinutes int
		want         int
	}{
		{"daytime only", at("2025-01-15", "09:00:00"), at("2025-01-15", "18:00:00"), 60, 0},
		{"early morning", at("2025-01-15", "04:00:00"), at("2025-01-15", "13:00:00"), 60, 60},
		{"full night with break excess", at("2025-01-15", "22:00:00"), at("2025-01-16", "06:00:00"), 120, 360},
		{"break absorbed by daytime", at("2025-01-15", "18:00:00"), at("2025-01-15", "23:00:00"), 60, 60},
		{"reversed", at("2025-01-15", "23:00:00"), at("2025-01-15", "22:00:00"), 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NightMinutes(*tc.start, *tc.end, tc.breakMinutes))
		})
	}
}

func TestCompute_AbsentOrIncomplete(t *testing.T) {
	d := Compute("2025-01-15", nil, nil, nil, nil)
	assert.Equal(t, attendance.Detail{DateKey: "2025-01-15"}, d)

	raw := record("2025-01-15", "09:00:00", "", 0)
	raw.WorkHoursInMinutes = intPtr(125)
	d = Compute("2025-01-15", raw, nil, nil, nil)
	assert.True(t, d.HasAttendance)
	assert.Empty(t, d.ClockInDisplay)
	assert.Empty(t, d.LateDisplay)
	assert.Equal(t, "2:05", d.WorkingDisplay)
}

func TestCompute_ApprovedAdjustmentOverrides(t *testing.T) {
	raw := record("2025-01-15", "09:00:00", "", 60)
	adj := &adjustment.Request{
		ID:          "a-1",
		TargetDate:  "2025-01-15",
		NewClockOut: at("2025-01-15", "18:00:00"),
		Status:      workflow.StatusApproved,
	}

	d := Compute("2025-01-15", raw, nil, adj, nil)
	assert.Equal(t, "09:00", d.ClockInDisplay)
	assert.Equal(t, "18:00", d.ClockOutDisplay)
	assert.Equal(t, "8:00", d.WorkingDisplay)

	adj.Status = workflow.StatusPending
	d = Compute("2025-01-15", raw, nil, adj, nil)
	assert.Empty(t, d.ClockOutDisplay)
	assert.Empty(t, d.WorkingDisplay)
}

func TestEffective(t *testing.T) {
	raw := record("2025-01-15", "09:00:00", "18:00:00", 60)

	assert.Same(t, raw, Effective("2025-01-15", raw, nil))

	rejected := &adjustment.Request{Status: workflow.StatusRejected, NewBreakMinutes: intPtr(0)}
	assert.Same(t, raw, Effective("2025-01-15", raw, rejected))

	approved := &adjustment.Request{Status: workflow.StatusApproved, NewBreakMinutes: intPtr(45)}
	eff := Effective("2025-01-15", raw, approved)
	require.NotNil(t, eff)
	assert.Equal(t, 45, *eff.BreakMinutes)
	assert.Equal(t, raw.ClockIn, eff.ClockIn)
	assert.Equal(t, 60, *raw.BreakMinutes)

	created := Effective("2025-01-15", nil, &adjustment.Request{Status: workflow.StatusApproved, NewClockIn: at("2025-01-15", "08:00:00")})
	require.NotNil(t, created)
	assert.Equal(t, "2025-01-15", created.Date)
	assert.True(t, created.HasPunches())
}
