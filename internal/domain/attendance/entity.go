package attendance

import (
	"time"
)

// Record is one day of raw time-clock punches for an employee. Date is kept
// exactly as the time clock delivered it; a nil punch means "not punched yet".
type Record struct {
	EmployeeID         string
	Date               string
	ClockIn            *time.Time
	ClockOut           *time.Time
	BreakMinutes       *int
	WorkHoursInMinutes *int
}

// HasPunches reports whether at least one punch exists.
func (r *Record) HasPunches() bool {
	return r != nil && (r.ClockIn != nil || r.ClockOut != nil)
}

// IsComplete reports whether both punches exist.
func (r *Record) IsComplete() bool {
	return r != nil && r.ClockIn != nil && r.ClockOut != nil
}

// Detail is the display-ready attendance for one day. Empty strings mean
// "blank"; durations are formatted as H:MM and never negative.
type Detail struct {
	DateKey           string `json:"date"`
	ClockInDisplay    string `json:"clock_in"`
	ClockOutDisplay   string `json:"clock_out"`
	BreakDisplay      string `json:"break"`
	WorkingDisplay    string `json:"working"`
	LateDisplay       string `json:"late"`
	EarlyLeaveDisplay string `json:"early_leave"`
	OvertimeDisplay   string `json:"overtime"`
	NightDisplay      string `json:"night"`
	IsFullDayLeave    bool   `json:"is_full_day_leave"`
	IsHalfDayLeave    bool   `json:"is_half_day_leave"`
	HasAttendance     bool   `json:"has_attendance"`

	// Raw minute values behind the displays, nil when blank.
	WorkingMinutes    *int `json:"working_minutes,omitempty"`
	LateMinutes       *int `json:"late_minutes,omitempty"`
	EarlyLeaveMinutes *int `json:"early_leave_minutes,omitempty"`
	OvertimeMinutes   *int `json:"overtime_minutes,omitempty"`
	NightMinutes      *int `json:"night_minutes,omitempty"`
}
