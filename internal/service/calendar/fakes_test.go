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
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	pubholiday "github.com/cmlabs-hris/attendance-portal/internal/pkg/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/service/aggregator"
)

type sources struct {
	leaves      []leave.Request
	adjustments []adjustment.Request
	patterns    []schedule.PatternRequest
	holidays    []holiday.Request
	records     []attendance.Record
	customs     []holiday.Custom

	leaveErr, adjustmentErr, patternErr, holidayErr, recordErr, customErr error
}

type leaveSource struct{ s *sources }

func (f leaveSource) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return f.s.leaves, f.s.leaveErr
}

type adjustmentSource struct{ s *sources }

func (f adjustmentSource) ListByEmployee(ctx context.Context, employeeID string) ([]adjustment.Request, error) {
	return f.s.adjustments, f.s.adjustmentErr
}

type patternSource struct{ s *sources }

func (f patternSource) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.PatternRequest, error) {
	return f.s.patterns, f.s.patternErr
}

type holidaySource struct{ s *sources }

func (f holidaySource) ListByEmployee(ctx context.Context, employeeID string) ([]holiday.Request, error) {
	return f.s.holidays, f.s.holidayErr
}

type attendanceSource struct{ s *sources }

func (f attendanceSource) ListMonthly(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Record, error) {
	return f.s.records, f.s.recordErr
}

type customSource struct{ s *sources }

func (f customSource) ListByEmployee(ctx context.Context, employeeID string) ([]holiday.Custom, error) {
	return f.s.customs, f.s.customErr
}

var (
	jst          = time.FixedZone("JST", 9*60*60)
	testHolidays = pubholiday.NewCalendar(2024, 2026)
)

func newTestEngine(s *sources, today string) *Engine {
	agg := aggregator.NewAggregatorService(leaveSource{s}, adjustmentSource{s}, patternSource{s}, holidaySource{s})
	e := NewEngine(agg, attendanceSource{s}, customSource{s}, testHolidays, jst)
	now := datekey.MustParse(today).At(12*60, jst)
	e.SetClock(func() time.Time { return now })
	return e
}

func clockAt(day, hhmm string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+hhmm, jst)
	if err != nil {
		panic(err)
	}
	return &t
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func cellOf(t *testing.T, v *calendar.MonthView, key string) calendar.Cell {
	t.Helper()
	for _, c := range v.Cells {
		if c.Date == key && c.InMonth {
			return c
		}
	}
	t.Fatalf("no in-month cell for %s", key)
	return calendar.Cell{}
}
