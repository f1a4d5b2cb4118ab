package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildJanuary(t *testing.T, s *sources) map[string]calendar.Cell {
	t.Helper()
	e := newTestEngine(s, "2025-01-20")
	mc := NewMonthContext("emp-1", datekey.Month{Year: 2025, Month: time.January})

	res, err := e.Run(context.Background(), mc, "")
	require.NoError(t, err)
	require.NotNil(t, res.View)

	cells := make(map[string]calendar.Cell, len(res.View.Cells))
	for _, c := range res.View.Cells {
		cells[c.Date] = c
	}
	return cells
}

func badgeKinds(c calendar.Cell) []calendar.BadgeKind {
	var kinds []calendar.BadgeKind
	for _, b := range c.Badges {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

func TestBuilder_GridPaddedToWholeWeeks(t *testing.T) {
	e := newTestEngine(&sources{}, "2025-01-20")
	mc := NewMonthContext("emp-1", datekey.Month{Year: 2025, Month: time.January})

	res, err := e.Run(context.Background(), mc, "")
	require.NoError(t, err)

	cells := res.View.Cells
	require.Len(t, cells, 35)
	assert.Equal(t, "2024-12-29", cells[0].Date)
	assert.Equal(t, time.Sunday, cells[0].Weekday)
	assert.Equal(t, calendar.ClassificationOtherMonth, cells[0].Classification)
	assert.False(t, cells[0].InMonth)
	assert.Equal(t, "2025-01-01", cells[3].Date)
	assert.True(t, cells[3].InMonth)
	assert.Equal(t, "2025-02-01", cells[34].Date)
	assert.Equal(t, calendar.ClassificationOtherMonth, cells[34].Classification)
}

func TestBuilder_Classification(t *testing.T) {
	cells := buildJanuary(t, &sources{})

	assert.Equal(t, calendar.ClassificationHoliday, cells["2025-01-01"].Classification)
	assert.Equal(t, "元日", cells["2025-01-01"].HolidayLabel)
	assert.Equal(t, calendar.ClassificationWeekend, cells["2025-01-04"].Classification)
	assert.Equal(t, calendar.ClassificationWeekday, cells["2025-01-06"].Classification)
	assert.Equal(t, calendar.ClassificationHoliday, cells["2025-01-13"].Classification)
	assert.Equal(t, "成人の日", cells["2025-01-13"].HolidayLabel)

	today := cells["2025-01-20"]
	assert.Equal(t, calendar.ClassificationToday, today.Classification)
	assert.True(t, today.IsToday)
}

func TestBuilder_ApprovedPatternOverridesWeekendAndHoliday(t *testing.T) {
	s := &sources{patterns: []schedule.PatternRequest{{
		ID:             "p-1",
		StartDate:      "2025-01-01",
		EndDate:        "2025-01-31",
		Status:         workflow.StatusApproved,
		StartTime:      "09:00",
		EndTime:        "18:00",
		WorkingMinutes: 480,
		Weekdays:       [7]bool{true, true, true, true, true, true, false},
		ApplyHoliday:   true,
	}}}

	cells := buildJanuary(t, s)

	sat := cells["2025-01-04"]
	assert.False(t, sat.IsNonWorkingDay)
	assert.Equal(t, calendar.ClassificationWeekday, sat.Classification)
	assert.Empty(t, sat.HolidayLabel)

	comingOfAge := cells["2025-01-13"]
	assert.False(t, comingOfAge.IsNonWorkingDay)
	assert.Equal(t, calendar.ClassificationWeekday, comingOfAge.Classification)
	assert.Empty(t, comingOfAge.HolidayLabel)

	assert.True(t, cells["2025-01-05"].IsNonWorkingDay)
}

func TestBuilder_AdjustmentBadgeSuppressedByFullDayLeave(t *testing.T) {
	s := &sources{
		leaves: []leave.Request{{
			ID: "l-1", StartDate: "2025-01-15", Status: workflow.StatusApproved,
			LeaveType: leave.LeaveTypePaid, TimeUnit: leave.TimeUnitFullDay,
		}},
		adjustments: []adjustment.Request{{ID: "a-1", TargetDate: "2025-01-15", Status: workflow.StatusPending}},
	}

	cells := buildJanuary(t, s)
	assert.Equal(t, []calendar.BadgeKind{calendar.BadgeKindLeave}, badgeKinds(cells["2025-01-15"]))

	s.leaves[0].TimeUnit = leave.TimeUnitHalfPM
	cells = buildJanuary(t, s)
	assert.Equal(t, []calendar.BadgeKind{calendar.BadgeKindLeave, calendar.BadgeKindAdjustment}, badgeKinds(cells["2025-01-15"]))
}

func TestBuilder_LeaveBadgeOnlyOnWorkingDays(t *testing.T) {
	s := &sources{leaves: []leave.Request{{
		ID: "l-1", StartDate: "2025-01-03", EndDate: "2025-01-06", Status: workflow.StatusApproved,
		LeaveType: leave.LeaveTypePaid, TimeUnit: leave.TimeUnitFullDay,
	}}}

	cells := buildJanuary(t, s)

	assert.Len(t, cells["2025-01-03"].Badges, 1)
	assert.Empty(t, cells["2025-01-04"].Badges)
	assert.Empty(t, cells["2025-01-05"].Badges)
	assert.Len(t, cells["2025-01-06"].Badges, 1)
}

func TestBuilder_LeaveLabels(t *testing.T) {
	s := &sources{leaves: []leave.Request{
		{ID: "am", StartDate: "2025-01-06", Status: workflow.StatusPending, LeaveType: leave.LeaveTypePaid, TimeUnit: leave.TimeUnitHalfAM},
		{ID: "pm", StartDate: "2025-01-07", Status: workflow.StatusApproved, LeaveType: leave.LeaveTypePaid, TimeUnit: leave.TimeUnitHalfPM},
		{ID: "paid", StartDate: "2025-01-08", Status: workflow.StatusApproved, LeaveType: leave.LeaveTypePaid, TimeUnit: leave.TimeUnitFullDay},
		{ID: "sick", StartDate: "2025-01-09", Status: workflow.StatusRejected, LeaveType: leave.LeaveTypeSick, TimeUnit: leave.TimeUnitFullDay, RejectionComment: strPtr("診断書を添付してください")},
		{ID: "special", StartDate: "2025-01-10", Status: workflow.StatusApproved, LeaveType: leave.LeaveTypeSpecial, TimeUnit: leave.TimeUnitHalfPM},
	}}

	cells := buildJanuary(t, s)

	am := cells["2025-01-06"].Badges[0]
	assert.Equal(t, "午前半休", am.Label)
	assert.Equal(t, "午前半休申請中", am.Text)
	assert.Equal(t, "pending", am.Style)
	assert.False(t, am.Clickable)

	assert.Equal(t, "午後半休", cells["2025-01-07"].Badges[0].Text)
	assert.Equal(t, "有給休暇", cells["2025-01-08"].Badges[0].Text)

	sick := cells["2025-01-09"].Badges[0]
	assert.Equal(t, "病気休暇却下", sick.Text)
	assert.Equal(t, "却下", sick.StatusLabel)
	assert.True(t, sick.Clickable)
	require.NotNil(t, sick.RejectionComment)
	assert.Equal(t, "診断書を添付してください", *sick.RejectionComment)

	assert.Equal(t, "特別休暇(午後)", cells["2025-01-10"].Badges[0].Text)
}

func TestBuilder_AdjustmentBadgeText(t *testing.T) {
	s := &sources{adjustments: []adjustment.Request{
		{ID: "a-1", TargetDate: "2025-01-06", Status: workflow.StatusPending},
		{ID: "a-2", TargetDate: "2025-01-07", Status: workflow.StatusApproved},
		{ID: "a-3", TargetDate: "2025-01-11", Status: workflow.StatusRejected, RejectionComment: strPtr("時刻が不正です")},
	}}

	cells := buildJanuary(t, s)

	assert.Equal(t, "打刻修正申請中", cells["2025-01-06"].Badges[0].Text)
	assert.Equal(t, "打刻修正済", cells["2025-01-07"].Badges[0].Text)
	// Adjustment badges appear on non-working days too.
	rejected := cells["2025-01-11"].Badges[0]
	assert.Equal(t, "打刻修正却下", rejected.Text)
	assert.True(t, rejected.Clickable)
}

func TestBuilder_HolidayBadgesAndGenericLabel(t *testing.T) {
	s := &sources{holidays: []holiday.Request{
		{ID: "hw", RequestType: holiday.RequestTypeHolidayWork, WorkDate: "2025-01-13", Status: workflow.StatusApproved,
			CompDate: strPtr("2025-01-20"), TakeComp: boolPtr(true)},
		{ID: "tr", RequestType: holiday.RequestTypeTransfer, WorkDate: "2025-01-01", TransferHolidayDate: strPtr("2025-01-17"), Status: workflow.StatusPending},
	}}

	cells := buildJanuary(t, s)

	work := cells["2025-01-13"]
	assert.Empty(t, work.HolidayLabel)
	require.Len(t, work.Badges, 1)
	assert.Equal(t, calendar.BadgeKindHolidayWork, work.Badges[0].Kind)
	assert.Equal(t, "休日出勤", work.Badges[0].Text)

	assert.Equal(t, "代休", cells["2025-01-20"].Badges[0].Text)

	// A pending transfer keeps the generic label.
	newYear := cells["2025-01-01"]
	assert.Equal(t, "元日", newYear.HolidayLabel)
	assert.Equal(t, calendar.BadgeKindTransfer, newYear.Badges[0].Kind)
	assert.Equal(t, "振替出勤申請中", newYear.Badges[0].Text)
	assert.Equal(t, "振替休日申請中", cells["2025-01-17"].Badges[0].Text)
}

func TestBuilder_EveryHolidayRequestOnDateGetsBadge(t *testing.T) {
	s := &sources{holidays: []holiday.Request{
		{ID: "tr", RequestType: holiday.RequestTypeTransfer, WorkDate: "2025-01-11", TransferHolidayDate: strPtr("2025-01-18"), Status: workflow.StatusApproved},
		{ID: "hw", RequestType: holiday.RequestTypeHolidayWork, WorkDate: "2025-01-18", Status: workflow.StatusPending},
	}}

	cells := buildJanuary(t, s)

	sat := cells["2025-01-18"]
	require.Len(t, sat.Badges, 2)
	assert.Equal(t, "tr", sat.Badges[0].RequestID)
	assert.Equal(t, "振替休日", sat.Badges[0].Text)
	assert.Equal(t, "hw", sat.Badges[1].RequestID)
	assert.Equal(t, "休日出勤申請中", sat.Badges[1].Text)
}

func TestBuilder_CustomHolidayLabelWins(t *testing.T) {
	s := &sources{
		customs: []holiday.Custom{
			{HolidayDate: "2025-01-13", HolidayType: "会社休日"},
			{HolidayDate: "2025-01-15", HolidayType: "創立記念日"},
		},
		holidays: []holiday.Request{
			{ID: "hw", RequestType: holiday.RequestTypeHolidayWork, WorkDate: "2025-01-13", Status: workflow.StatusApproved},
		},
	}

	cells := buildJanuary(t, s)

	assert.Equal(t, "会社休日", cells["2025-01-13"].HolidayLabel)
	founding := cells["2025-01-15"]
	assert.Equal(t, "創立記念日", founding.HolidayLabel)
	assert.Equal(t, calendar.ClassificationHoliday, founding.Classification)
	assert.False(t, founding.IsNonWorkingDay)
}

func TestBuilder_AttendanceSummary(t *testing.T) {
	s := &sources{
		records: []attendance.Record{
			{Date: "2025-01-06", ClockIn: clockAt("2025-01-06", "09:00"), ClockOut: clockAt("2025-01-06", "18:00"), BreakMinutes: intPtr(60)},
			{Date: "2025-01-07", ClockIn: clockAt("2025-01-07", "08:55")},
			{Date: "2025-01-08", ClockIn: clockAt("2025-01-08", "09:00"), ClockOut: clockAt("2025-01-08", "18:00")},
		},
		leaves: []leave.Request{{
			ID: "l-1", StartDate: "2025-01-08", Status: workflow.StatusApproved,
			LeaveType: leave.LeaveTypePaid, TimeUnit: leave.TimeUnitFullDay,
		}},
		adjustments: []adjustment.Request{{
			ID: "a-1", TargetDate: "2025-01-09", Status: workflow.StatusApproved,
			NewClockIn: clockAt("2025-01-09", "10:00"), NewClockOut: clockAt("2025-01-09", "19:00"),
		}},
	}

	cells := buildJanuary(t, s)

	assert.Equal(t, "09:00 - 18:00", cells["2025-01-06"].AttendanceSummary)
	assert.Equal(t, "08:55 - --:--", cells["2025-01-07"].AttendanceSummary)
	assert.Empty(t, cells["2025-01-08"].AttendanceSummary)
	assert.Equal(t, "10:00 - 19:00", cells["2025-01-09"].AttendanceSummary)
	assert.Empty(t, cells["2025-01-10"].AttendanceSummary)
}
