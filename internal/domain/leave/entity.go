package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
)

type LeaveType string

const (
	LeaveTypePaid        LeaveType = "PAID_LEAVE"
	LeaveTypeSpecial     LeaveType = "SPECIAL_LEAVE"
	LeaveTypeSick        LeaveType = "SICK_LEAVE"
	LeaveTypeBereavement LeaveType = "BEREAVEMENT_LEAVE"
	LeaveTypeUnpaid      LeaveType = "UNPAID_LEAVE"
)

var leaveTypeNames = map[LeaveType]string{
	LeaveTypePaid:        "有給休暇",
	LeaveTypeSpecial:     "特別休暇",
	LeaveTypeSick:        "病気休暇",
	LeaveTypeBereavement: "慶弔休暇",
	LeaveTypeUnpaid:      "欠勤",
}

// ParseLeaveType maps leave type codes from the leave_types table onto the
// portal's closed set. Unrecognized codes are kept as-is.
func ParseLeaveType(code string) LeaveType {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch c {
	case "PAID_LEAVE", "PAID", "ANNUAL", "ANNUAL_LEAVE":
		return LeaveTypePaid
	case "SPECIAL_LEAVE", "SPECIAL":
		return LeaveTypeSpecial
	case "SICK_LEAVE", "SICK":
		return LeaveTypeSick
	case "BEREAVEMENT_LEAVE", "BEREAVEMENT", "CONDOLENCE":
		return LeaveTypeBereavement
	case "UNPAID_LEAVE", "UNPAID", "ABSENCE":
		return LeaveTypeUnpaid
	}
	return LeaveType(c)
}

// Name returns the display name, falling back to a generic "休暇".
func (t LeaveType) Name() string {
	if name, ok := leaveTypeNames[t]; ok {
		return name
	}
	return "休暇"
}

// TimeUnit is the portion of the day a leave covers.
type TimeUnit string

const (
	TimeUnitFullDay TimeUnit = "FULL_DAY"
	TimeUnitHalfAM  TimeUnit = "HALF_AM"
	TimeUnitHalfPM  TimeUnit = "HALF_PM"
)

// ParseTimeUnit also accepts the leave_duration_enum database values.
func ParseTimeUnit(s string) TimeUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half_am", "half_day_morning", "am":
		return TimeUnitHalfAM
	case "half_pm", "half_day_afternoon", "pm":
		return TimeUnitHalfPM
	}
	return TimeUnitFullDay
}

func (u TimeUnit) IsHalfDay() bool {
	return u == TimeUnitHalfAM || u == TimeUnitHalfPM
}

// Request is a leave request as delivered by the leave source. A multi-day
// request covers StartDate..EndDate inclusive; an empty EndDate means a
// single day.
type Request struct {
	ID               string
	EmployeeID       string
	StartDate        string
	EndDate          string
	Status           workflow.Status
	LeaveType        LeaveType
	TimeUnit         TimeUnit
	Reason           string
	RejectionComment *string
	UpdatedAt        time.Time
}

// IsFullDayPaidLeave reports an approved full-day paid leave.
func (r Request) IsFullDayPaidLeave() bool {
	return r.Status.IsApproved() && r.LeaveType == LeaveTypePaid && r.TimeUnit == TimeUnitFullDay
}

// IsHalfDayPaidLeave reports an approved morning or afternoon paid leave.
func (r Request) IsHalfDayPaidLeave() bool {
	return r.Status.IsApproved() && r.LeaveType == LeaveTypePaid && r.TimeUnit.IsHalfDay()
}
