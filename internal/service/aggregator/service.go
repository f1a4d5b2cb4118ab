package aggregator

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"golang.org/x/sync/errgroup"
)

type AggregatorServiceImpl struct {
	leaveRepo      leave.LeaveRequestRepository
	adjustmentRepo adjustment.AdjustmentRequestRepository
	patternRepo    schedule.PatternRequestRepository
	holidayRepo    holiday.HolidayRequestRepository
}

func NewAggregatorService(
	leaveRepo leave.LeaveRequestRepository,
	adjustmentRepo adjustment.AdjustmentRequestRepository,
	patternRepo schedule.PatternRequestRepository,
	holidayRepo holiday.HolidayRequestRepository,
) calendar.Aggregator {
	return &AggregatorServiceImpl{
		leaveRepo:      leaveRepo,
		adjustmentRepo: adjustmentRepo,
		patternRepo:    patternRepo,
		holidayRepo:    holidayRepo,
	}
}

// Aggregate loads the four families concurrently. A family that fails is
// logged, left empty and reported in Failures; the others still load.
func (s *AggregatorServiceImpl) Aggregate(ctx context.Context, employeeID string, year int, month time.Month) calendar.Aggregate {
	agg := calendar.NewAggregate(employeeID, year, month)
	m := datekey.Month{Year: year, Month: month}
	if !m.Valid() {
		return agg
	}

	var (
		leaves      []leave.Request
		adjustments []adjustment.Request
		patterns    []schedule.PatternRequest
		holidays    []holiday.Request

		leaveErr, adjustmentErr, patternErr, holidayErr error
	)

	// Every goroutine returns nil so one failing family never cancels the rest.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		leaves, leaveErr = s.leaveRepo.ListByEmployee(gctx, employeeID)
		return nil
	})
	g.Go(func() error {
		adjustments, adjustmentErr = s.adjustmentRepo.ListByEmployee(gctx, employeeID)
		return nil
	})
	g.Go(func() error {
		patterns, patternErr = s.patternRepo.ListByEmployee(gctx, employeeID)
		return nil
	})
	g.Go(func() error {
		holidays, holidayErr = s.holidayRepo.ListByEmployee(gctx, employeeID)
		return nil
	})
	_ = g.Wait()

	for _, f := range []struct {
		family calendar.Family
		err    error
	}{
		{calendar.FamilyLeave, leaveErr},
		{calendar.FamilyAdjustment, adjustmentErr},
		{calendar.FamilyWorkPattern, patternErr},
		{calendar.FamilyHoliday, holidayErr},
	} {
		if f.err == nil {
			continue
		}
		slog.Error("failed to load request family",
			"family", f.family,
			"employee_id", employeeID,
			"year", year,
			"month", int(month),
			"error", f.err,
		)
		agg.Failures = append(agg.Failures, calendar.SourceFailure{Family: f.family, Message: f.err.Error()})
	}

	if leaveErr == nil {
		expandLeaves(&agg, m, leaves)
	}
	if patternErr == nil {
		expandPatterns(&agg, m, patterns)
	}
	if holidayErr == nil {
		expandHolidays(&agg, m, holidays)
	}
	// Adjustments go last: suppression needs the leave entries.
	if adjustmentErr == nil {
		expandAdjustments(&agg, m, adjustments)
	}

	return agg
}

// dateRange parses a start/end pair. An empty end means a single day.
func dateRange(start, end string) (datekey.Date, datekey.Date, bool) {
	s, ok := datekey.Parse(start)
	if !ok {
		return datekey.Date{}, datekey.Date{}, false
	}
	if end == "" {
		return s, s, true
	}
	e, ok := datekey.Parse(end)
	if !ok {
		return datekey.Date{}, datekey.Date{}, false
	}
	return s, e, true
}

func expandLeaves(agg *calendar.Aggregate, m datekey.Month, requests []leave.Request) {
	for _, r := range requests {
		if !r.Status.IsActive() {
			continue
		}
		start, end, ok := dateRange(r.StartDate, r.EndDate)
		if !ok {
			slog.Debug("skipping leave request with malformed date",
				"request_id", r.ID, "start_date", r.StartDate, "end_date", r.EndDate)
			continue
		}
		days := m.Clip(start, end)
		if len(days) == 0 {
			continue
		}
		agg.LeaveRequests = append(agg.LeaveRequests, r)
		for _, d := range days {
			key := d.Key()
			// Two active leaves on one date: the most recently updated wins,
			// ties keep the first seen.
			if existing, ok := agg.Leave[key]; ok && !r.UpdatedAt.After(existing.Request.UpdatedAt) {
				continue
			}
			agg.Leave[key] = calendar.LeaveEntry{DateKey: key, Request: r}
		}
	}
}

func expandPatterns(agg *calendar.Aggregate, m datekey.Month, requests []schedule.PatternRequest) {
	for _, r := range requests {
		if !r.Status.IsActive() {
			continue
		}
		start, end, ok := dateRange(r.StartDate, r.EndDate)
		if !ok {
			slog.Debug("skipping work pattern request with malformed date",
				"request_id", r.ID, "start_date", r.StartDate, "end_date", r.EndDate)
			continue
		}
		days := m.Clip(start, end)
		if len(days) == 0 {
			continue
		}
		agg.PatternRequests = append(agg.PatternRequests, r)
		if !r.Status.IsApproved() {
			continue
		}
		for _, d := range days {
			key := d.Key()
			agg.Pattern[key] = calendar.PatternEntry{DateKey: key, Request: r}
		}
	}
}

func expandHolidays(agg *calendar.Aggregate, m datekey.Month, requests []holiday.Request) {
	for _, r := range requests {
		if !r.Status.IsActive() {
			continue
		}
		work, ok := datekey.Parse(r.WorkDate)
		if !ok {
			slog.Debug("skipping holiday request with malformed work date",
				"request_id", r.ID, "work_date", r.WorkDate)
			continue
		}

		entries := []calendar.HolidayEntry{{DateKey: work.Key(), Role: calendar.HolidayRoleWork}}
		switch r.RequestType {
		case holiday.RequestTypeHolidayWork:
			if r.TakesComp() {
				if comp, ok := datekey.Parse(*r.CompDate); ok {
					entries = append(entries, calendar.HolidayEntry{DateKey: comp.Key(), Role: calendar.HolidayRoleComp})
				}
			}
		case holiday.RequestTypeTransfer:
			if r.TransferHolidayDate != nil {
				if off, ok := datekey.Parse(*r.TransferHolidayDate); ok {
					entries = append(entries, calendar.HolidayEntry{DateKey: off.Key(), Role: calendar.HolidayRoleTransfer})
				}
			}
		default:
			slog.Debug("skipping holiday request with unknown type",
				"request_id", r.ID, "request_type", r.RequestType)
			continue
		}

		touched := false
		for _, e := range entries {
			d, _ := datekey.Parse(e.DateKey)
			if !m.Contains(d) {
				continue
			}
			e.Request = r
			agg.Holiday[e.DateKey] = append(agg.Holiday[e.DateKey], e)
			touched = true
		}
		if touched {
			agg.HolidayRequests = append(agg.HolidayRequests, r)
		}
	}
}

func expandAdjustments(agg *calendar.Aggregate, m datekey.Month, requests []adjustment.Request) {
	for _, r := range requests {
		if !r.Status.IsActive() {
			continue
		}
		d, ok := datekey.Parse(r.TargetDate)
		if !ok {
			slog.Debug("skipping adjustment request with malformed date",
				"request_id", r.ID, "target_date", r.TargetDate)
			continue
		}
		if !m.Contains(d) {
			continue
		}
		agg.AdjustmentRequests = append(agg.AdjustmentRequests, r)

		key := d.Key()
		if l, ok := agg.Leave[key]; ok && !l.Request.TimeUnit.IsHalfDay() {
			slog.Debug("adjustment suppressed by leave",
				"request_id", r.ID, "leave_request_id", l.Request.ID, "date", key)
			continue
		}
		agg.Adjustment[key] = calendar.AdjustmentEntry{DateKey: key, Request: r}
	}
}
