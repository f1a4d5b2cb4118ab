package schedule

import (
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
)

// PatternRequest changes the employee's work pattern for StartDate..EndDate.
type PatternRequest struct {
	ID             string
	EmployeeID     string
	StartDate      string
	EndDate        string
	Status         workflow.Status
	StartTime      string // "HH:MM"
	EndTime        string // "HH:MM"
	BreakMinutes   int
	WorkingMinutes int
	// Weekdays[0] is Monday ... Weekdays[6] is Sunday, the same ordering as
	// work_schedule_times.day_of_week - 1.
	Weekdays     [7]bool
	ApplyHoliday bool
	Reason       string
	UpdatedAt    time.Time
}

// DayIndex converts a time.Weekday to the Monday-first Weekdays index.
func DayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// WorksOn reports the weekday flag for d.
func (p PatternRequest) WorksOn(d datekey.Date) bool {
	return p.Weekdays[DayIndex(d.Weekday())]
}

// StartMinutes returns the pattern start as minutes after midnight.
func (p PatternRequest) StartMinutes() (int, bool) {
	return datekey.ParseClock(p.StartTime)
}

// EndMinutes returns the pattern end as minutes after midnight.
func (p PatternRequest) EndMinutes() (int, bool) {
	return datekey.ParseClock(p.EndTime)
}
