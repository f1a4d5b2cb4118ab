// Package calendar runs reconciliation passes: it loads every source of an
// employee-month, refreshes the month context and builds the published
// MonthView when the content snapshot moved.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"golang.org/x/sync/errgroup"
)

// sourceCount is the number of families a pass loads.
const sourceCount = 6

// PassResult is the outcome of one pass. View is nil when the snapshot did
// not change.
type PassResult struct {
	View     *calendar.MonthView
	Changed  bool
	Snapshot string
	Version  int64
}

type Engine struct {
	aggregator     calendar.Aggregator
	attendanceRepo attendance.AttendanceRepository
	customRepo     holiday.CustomHolidayRepository
	builder        *Builder
	loc            *time.Location
	now            func() time.Time
}

func NewEngine(
	aggregator calendar.Aggregator,
	attendanceRepo attendance.AttendanceRepository,
	customRepo holiday.CustomHolidayRepository,
	holidays HolidayCalendar,
	loc *time.Location,
) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		aggregator:     aggregator,
		attendanceRepo: attendanceRepo,
		customRepo:     customRepo,
		builder:        NewBuilder(holidays),
		loc:            loc,
		now:            time.Now,
	}
}

// SetClock replaces the wall clock used to decide "today".
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

func (e *Engine) Today() datekey.Date {
	return datekey.FromTime(e.now().In(e.loc))
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Run loads all sources, reloads mc and builds a view unless the snapshot
// equals previous. It fails only when the context ends or every source
// failed; mc is left untouched in both cases.
func (e *Engine) Run(ctx context.Context, mc *MonthContext, previous string) (PassResult, error) {
	started := time.Now()

	var (
		agg       calendar.Aggregate
		records   []attendance.Record
		customs   []holiday.Custom
		attErr    error
		customErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		agg = e.aggregator.Aggregate(gctx, mc.EmployeeID, mc.Month.Year, mc.Month.Month)
		return nil
	})
	g.Go(func() error {
		records, attErr = e.attendanceRepo.ListMonthly(gctx, mc.EmployeeID, mc.Month.Year, mc.Month.Month)
		return nil
	})
	g.Go(func() error {
		customs, customErr = e.customRepo.ListByEmployee(gctx, mc.EmployeeID)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return PassResult{}, fmt.Errorf("reconciliation pass for %s: %w", mc.Month.Key(), err)
	}

	if attErr != nil {
		e.logSourceFailure(mc, calendar.FamilyAttendance, attErr)
		agg.Failures = append(agg.Failures, calendar.SourceFailure{Family: calendar.FamilyAttendance, Message: attErr.Error()})
		records = nil
	}
	if customErr != nil {
		e.logSourceFailure(mc, calendar.FamilyCustomHoliday, customErr)
		agg.Failures = append(agg.Failures, calendar.SourceFailure{Family: calendar.FamilyCustomHoliday, Message: customErr.Error()})
		customs = nil
	}
	if len(agg.Failures) >= sourceCount {
		return PassResult{}, calendar.ErrAllSourcesFailed
	}

	version := mc.Reload(agg, records, customs)
	today := e.Today()
	snapshot := Snapshot(mc, today)

	res := PassResult{Snapshot: snapshot, Version: version}
	if snapshot != previous {
		res.View = e.Build(mc, today, snapshot)
		res.Changed = true
	}

	slog.Debug("reconciliation pass finished",
		"employee_id", mc.EmployeeID,
		"month", mc.Month.Key(),
		"changed", res.Changed,
		"version", version,
		"failures", len(agg.Failures),
		"duration", time.Since(started),
	)
	return res, nil
}

// Build assembles a complete MonthView from the current context.
func (e *Engine) Build(mc *MonthContext, today datekey.Date, snapshot string) *calendar.MonthView {
	cells := e.builder.Build(mc, today)
	details := mc.Details()
	agg := mc.Aggregate()

	return &calendar.MonthView{
		EmployeeID: mc.EmployeeID,
		Year:       mc.Month.Year,
		Month:      mc.Month.Month,
		Version:    mc.Version(),
		Snapshot:   snapshot,
		Cells:      cells,
		Details:    details,
		Effective:  mc.EffectiveRecords(),
		Summary:    Summarize(mc, cells, details),
		Failures:   agg.Failures,
		BuiltAt:    e.now(),
	}
}

func (e *Engine) logSourceFailure(mc *MonthContext, family calendar.Family, err error) {
	slog.Error("failed to load source",
		"family", family,
		"employee_id", mc.EmployeeID,
		"year", mc.Month.Year,
		"month", int(mc.Month.Month),
		"error", err,
	)
}
