package calendar

import (
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/service/businessday"
)

// HolidayCalendar is the public holiday lookup used for classification and
// the generic holiday label.
type HolidayCalendar interface {
	IsHoliday(d datekey.Date) bool
	Name(d datekey.Date) (string, bool)
}

const noClock = "--:--"

type Builder struct {
	resolver *businessday.Resolver
	holidays HolidayCalendar
}

func NewBuilder(holidays HolidayCalendar) *Builder {
	return &Builder{
		resolver: businessday.NewResolver(holidays),
		holidays: holidays,
	}
}

// Resolver exposes the business-day resolver the builder classifies with.
func (b *Builder) Resolver() *businessday.Resolver {
	return b.resolver
}

// Build returns the Sunday-first grid of the context's month, padded with the
// adjacent months' days to whole weeks.
func (b *Builder) Build(mc *MonthContext, today datekey.Date) []calendar.Cell {
	first, last := mc.Month.First(), mc.Month.Last()
	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(int(time.Saturday - last.Weekday()))

	var cells []calendar.Cell
	for d := start; !d.After(end); d = d.AddDays(1) {
		if !mc.Month.Contains(d) {
			cells = append(cells, b.otherMonthCell(d, today))
			continue
		}
		cells = append(cells, b.cell(mc, d, today))
	}
	return cells
}

func (b *Builder) otherMonthCell(d datekey.Date, today datekey.Date) calendar.Cell {
	res := b.resolver.Resolve(d, nil)
	return calendar.Cell{
		Date:            d.Key(),
		Day:             d.Day,
		Weekday:         d.Weekday(),
		Classification:  calendar.ClassificationOtherMonth,
		IsToday:         d == today,
		IsNonWorkingDay: res.IsNonWorking(),
		Badges:          []calendar.Badge{},
	}
}

func (b *Builder) cell(mc *MonthContext, d datekey.Date, today datekey.Date) calendar.Cell {
	key := d.Key()
	agg := mc.Aggregate()
	res := b.resolver.Resolve(d, agg.PatternOn(key))
	nonWorking := res.IsNonWorking()

	c := calendar.Cell{
		Date:            key,
		Day:             d.Day,
		Weekday:         d.Weekday(),
		InMonth:         true,
		IsToday:         d == today,
		IsNonWorkingDay: nonWorking,
		Badges:          []calendar.Badge{},
	}

	custom, hasCustom := mc.CustomHoliday(key)
	entries := agg.HolidaysOn(key)

	switch {
	case hasCustom:
		c.HolidayLabel = custom
	case res.IsPublicHoliday && nonWorking && !hasApprovedHolidayWork(entries):
		c.HolidayLabel, _ = b.holidays.Name(d)
	}

	switch {
	case c.IsToday:
		c.Classification = calendar.ClassificationToday
	case hasCustom || (res.IsPublicHoliday && nonWorking):
		c.Classification = calendar.ClassificationHoliday
	case nonWorking:
		c.Classification = calendar.ClassificationWeekend
	default:
		c.Classification = calendar.ClassificationWeekday
	}

	leaveReq := agg.LeaveOn(key)
	if leaveReq != nil && !nonWorking {
		c.Badges = append(c.Badges, leaveBadge(*leaveReq))
	}
	adj := agg.AdjustmentOn(key)
	if adj != nil {
		c.Badges = append(c.Badges, adjustmentBadge(*adj))
	}
	for _, e := range entries {
		c.Badges = append(c.Badges, holidayBadge(e))
	}

	fullDayLeave := leaveReq != nil && leaveReq.IsFullDayPaidLeave()
	if !fullDayLeave {
		eff := mc.Effective(key)
		approvedAdj := adj != nil && adj.Status.IsApproved()
		if eff.HasPunches() || approvedAdj {
			c.AttendanceSummary = summaryText(eff)
		}
	}

	return c
}

func hasApprovedHolidayWork(entries []calendar.HolidayEntry) bool {
	for _, e := range entries {
		if e.Role == calendar.HolidayRoleWork &&
			e.Request.RequestType == holiday.RequestTypeHolidayWork &&
			e.Request.Status.IsApproved() {
			return true
		}
	}
	return false
}

func summaryText(r *attendance.Record) string {
	in, out := noClock, noClock
	if r != nil && r.ClockIn != nil {
		in = datekey.FormatClock(*r.ClockIn)
	}
	if r != nil && r.ClockOut != nil {
		out = datekey.FormatClock(*r.ClockOut)
	}
	return in + " - " + out
}

func leaveLabel(r leave.Request) string {
	if r.LeaveType == leave.LeaveTypePaid {
		switch r.TimeUnit {
		case leave.TimeUnitHalfAM:
			return "午前半休"
		case leave.TimeUnitHalfPM:
			return "午後半休"
		}
		return "有給休暇"
	}
	name := r.LeaveType.Name()
	switch r.TimeUnit {
	case leave.TimeUnitHalfAM:
		return name + "(午前)"
	case leave.TimeUnitHalfPM:
		return name + "(午後)"
	}
	return name
}

// requestText appends the in-progress or rejected marker; approved requests
// show the plain label.
func requestText(label string, status workflow.Status) string {
	switch status {
	case workflow.StatusPending:
		return label + "申請中"
	case workflow.StatusRejected:
		return label + "却下"
	}
	return label
}

func newBadge(kind calendar.BadgeKind, id string, status workflow.Status, label, text string, rejection *string) calendar.Badge {
	b := calendar.Badge{
		Kind:        kind,
		RequestID:   id,
		Status:      status,
		StatusLabel: status.Label(),
		Label:       label,
		Text:        text,
		Style:       status.Style(),
	}
	if status == workflow.StatusRejected {
		b.Clickable = true
		b.RejectionComment = rejection
	}
	return b
}

func leaveBadge(r leave.Request) calendar.Badge {
	label := leaveLabel(r)
	return newBadge(calendar.BadgeKindLeave, r.ID, r.Status, label, requestText(label, r.Status), r.RejectionComment)
}

func adjustmentBadge(r adjustment.Request) calendar.Badge {
	const label = "打刻修正"
	text := label
	switch r.Status {
	case workflow.StatusPending:
		text += "申請中"
	case workflow.StatusApproved:
		text += "済"
	case workflow.StatusRejected:
		text += "却下"
	}
	return newBadge(calendar.BadgeKindAdjustment, r.ID, r.Status, label, text, r.RejectionComment)
}

func holidayBadge(e calendar.HolidayEntry) calendar.Badge {
	kind := calendar.BadgeKindHolidayWork
	var label string
	switch e.Role {
	case calendar.HolidayRoleComp:
		label = "代休"
	case calendar.HolidayRoleTransfer:
		kind = calendar.BadgeKindTransfer
		label = "振替休日"
	default:
		if e.Request.RequestType == holiday.RequestTypeTransfer {
			kind = calendar.BadgeKindTransfer
			label = "振替出勤"
		} else {
			label = "休日出勤"
		}
	}
	return newBadge(kind, e.Request.ID, e.Request.Status, label, requestText(label, e.Request.Status), e.Request.RejectionComment)
}
