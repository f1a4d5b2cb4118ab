package calendar

import (
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/shopspring/decimal"
)

// Family names one data source feeding a reconciliation pass.
type Family string

const (
	FamilyAttendance    Family = "attendance"
	FamilyLeave         Family = "leave"
	FamilyAdjustment    Family = "adjustment"
	FamilyWorkPattern   Family = "work_pattern"
	FamilyHoliday       Family = "holiday"
	FamilyCustomHoliday Family = "custom_holiday"
)

// SourceFailure records a source that could not be loaded. The family's
// collection is empty for that pass.
type SourceFailure struct {
	Family  Family `json:"family"`
	Message string `json:"message"`
}

type LeaveEntry struct {
	DateKey string
	Request leave.Request
}

type AdjustmentEntry struct {
	DateKey string
	Request adjustment.Request
}

type PatternEntry struct {
	DateKey string
	Request schedule.PatternRequest
}

// HolidayRole says which date of a holiday request an entry stands for.
type HolidayRole string

const (
	HolidayRoleWork     HolidayRole = "work"
	HolidayRoleTransfer HolidayRole = "transfer_holiday"
	HolidayRoleComp     HolidayRole = "comp_holiday"
)

type HolidayEntry struct {
	DateKey string
	Role    HolidayRole
	Request holiday.Request
}

// Aggregate holds the four request families of one employee-month, expanded
// to per-day entries keyed by date key. Cancelled and malformed requests are
// already gone; Pattern only holds approved entries.
type Aggregate struct {
	EmployeeID string
	Year       int
	Month      time.Month

	Leave      map[string]LeaveEntry
	Adjustment map[string]AdjustmentEntry
	Pattern    map[string]PatternEntry
	// Several holiday requests may touch one date, e.g. one request's work
	// date and another's transfer date. Entries keep source order.
	Holiday map[string][]HolidayEntry

	// Active requests touching the month, in source order.
	LeaveRequests      []leave.Request
	AdjustmentRequests []adjustment.Request
	PatternRequests    []schedule.PatternRequest
	HolidayRequests    []holiday.Request

	Failures []SourceFailure
}

// NewAggregate returns an Aggregate with empty lookups.
func NewAggregate(employeeID string, year int, month time.Month) Aggregate {
	return Aggregate{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Leave:      make(map[string]LeaveEntry),
		Adjustment: make(map[string]AdjustmentEntry),
		Pattern:    make(map[string]PatternEntry),
		Holiday:    make(map[string][]HolidayEntry),
	}
}

// LeaveOn returns the leave entry for dateKey, or nil.
func (a Aggregate) LeaveOn(dateKey string) *leave.Request {
	if e, ok := a.Leave[dateKey]; ok {
		r := e.Request
		return &r
	}
	return nil
}

// AdjustmentOn returns the adjustment entry for dateKey, or nil.
func (a Aggregate) AdjustmentOn(dateKey string) *adjustment.Request {
	if e, ok := a.Adjustment[dateKey]; ok {
		r := e.Request
		return &r
	}
	return nil
}

// PatternOn returns the approved pattern covering dateKey, or nil.
func (a Aggregate) PatternOn(dateKey string) *schedule.PatternRequest {
	if e, ok := a.Pattern[dateKey]; ok {
		r := e.Request
		return &r
	}
	return nil
}

// HolidaysOn returns the holiday entries touching dateKey.
func (a Aggregate) HolidaysOn(dateKey string) []HolidayEntry {
	return a.Holiday[dateKey]
}

type Classification string

const (
	ClassificationWeekday    Classification = "weekday"
	ClassificationToday      Classification = "today"
	ClassificationWeekend    Classification = "weekend"
	ClassificationHoliday    Classification = "holiday"
	ClassificationOtherMonth Classification = "otherMonth"
)

type BadgeKind string

const (
	BadgeKindLeave       BadgeKind = "leave"
	BadgeKindAdjustment  BadgeKind = "adjustment"
	BadgeKindHolidayWork BadgeKind = "holiday_work"
	BadgeKindTransfer    BadgeKind = "transfer"
)

// Badge is one request marker on a calendar cell.
type Badge struct {
	Kind        BadgeKind       `json:"kind"`
	RequestID   string          `json:"request_id"`
	Status      workflow.Status `json:"status"`
	StatusLabel string          `json:"status_label"`
	Label       string          `json:"label"`
	Text        string          `json:"text"`
	Style       string          `json:"style"`
	// Clickable badges open the rejection comment.
	Clickable        bool    `json:"clickable"`
	RejectionComment *string `json:"rejection_comment,omitempty"`
}

// Cell is one day of the visible month grid.
type Cell struct {
	Date              string         `json:"date"`
	Day               int            `json:"day"`
	Weekday           time.Weekday   `json:"weekday"`
	Classification    Classification `json:"classification"`
	InMonth           bool           `json:"in_month"`
	IsToday           bool           `json:"is_today"`
	IsNonWorkingDay   bool           `json:"is_non_working_day"`
	HolidayLabel      string         `json:"holiday_label,omitempty"`
	Badges            []Badge        `json:"badges"`
	AttendanceSummary string         `json:"attendance_summary,omitempty"`
}

// Summary totals the in-month days of a view.
type Summary struct {
	WorkingDays     int             `json:"working_days"`
	AttendedDays    int             `json:"attended_days"`
	WorkingMinutes  int             `json:"working_minutes"`
	WorkingDisplay  string          `json:"working"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	OvertimeDisplay string          `json:"overtime"`
	NightMinutes    int             `json:"night_minutes"`
	NightDisplay    string          `json:"night"`
	LateCount       int             `json:"late_count"`
	EarlyLeaveCount int             `json:"early_leave_count"`
	PaidLeaveDays   decimal.Decimal `json:"paid_leave_days"`
	PendingByFamily map[Family]int  `json:"pending_by_family"`
	SourceFailures  int             `json:"source_failures"`
}

// MonthView is the published result of one reconciliation pass. It is never
// mutated after publication.
type MonthView struct {
	EmployeeID string                       `json:"employee_id"`
	Year       int                          `json:"year"`
	Month      time.Month                   `json:"month"`
	Version    int64                        `json:"version"`
	Snapshot   string                       `json:"-"`
	Cells      []Cell                       `json:"cells"`
	Details    map[string]attendance.Detail `json:"-"`
	Effective  map[string]attendance.Record `json:"-"`
	Summary    Summary                      `json:"summary"`
	Failures   []SourceFailure              `json:"failures,omitempty"`
	BuiltAt    time.Time                    `json:"built_at"`
}

// RefreshResult reports the outcome of a forced refresh.
type RefreshResult struct {
	Skipped bool  `json:"skipped"`
	Changed bool  `json:"changed"`
	Version int64 `json:"version"`
}
