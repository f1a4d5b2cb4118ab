package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
)

// Snapshot digests everything a rebuild could depend on: every aggregated
// request as loaded, the request each date resolved to, the raw punches, the
// custom holidays and today's date. Equal inputs give equal snapshots
// regardless of source order.
func Snapshot(mc *MonthContext, today datekey.Date) string {
	agg := mc.Aggregate()
	var lines []string

	for _, r := range agg.LeaveRequests {
		lines = append(lines, join("leave", r.ID, string(r.Status), r.StartDate, r.EndDate, string(r.LeaveType), string(r.TimeUnit),
			r.UpdatedAt.Format(time.RFC3339Nano), deref(r.RejectionComment)))
	}
	for _, r := range agg.AdjustmentRequests {
		lines = append(lines, join("adjustment", r.ID, string(r.Status), r.TargetDate, clock(r.NewClockIn), clock(r.NewClockOut), minutes(r.NewBreakMinutes),
			deref(r.RejectionComment)))
	}
	for _, r := range agg.PatternRequests {
		lines = append(lines, join("pattern", r.ID, string(r.Status), r.StartDate, r.EndDate, r.StartTime, r.EndTime,
			fmt.Sprint(r.WorkingMinutes), fmt.Sprint(r.Weekdays), fmt.Sprint(r.ApplyHoliday)))
	}
	for _, r := range agg.HolidayRequests {
		lines = append(lines, join("holiday", r.ID, string(r.Status), string(r.RequestType), r.WorkDate,
			deref(r.CompDate), deref(r.TransferHolidayDate), fmt.Sprint(r.TakesComp()), deref(r.RejectionComment)))
	}

	// Resolved winners per date; a tie-break or source-order change can move
	// these without touching any request line.
	for key, e := range agg.Leave {
		lines = append(lines, join("leave-on", key, e.Request.ID))
	}
	for key, e := range agg.Adjustment {
		lines = append(lines, join("adjustment-on", key, e.Request.ID))
	}
	for key, e := range agg.Pattern {
		lines = append(lines, join("pattern-on", key, e.Request.ID))
	}
	for key, entries := range agg.Holiday {
		for i, e := range entries {
			lines = append(lines, join("holiday-on", key, fmt.Sprint(i), e.Request.ID, string(e.Role)))
		}
	}
	for key, r := range mc.attendance {
		lines = append(lines, join("attendance", key, clock(r.ClockIn), clock(r.ClockOut), minutes(r.BreakMinutes), minutes(r.WorkHoursInMinutes)))
	}
	for key, label := range mc.custom {
		lines = append(lines, join("custom", key, label))
	}
	for _, f := range agg.Failures {
		lines = append(lines, join("failure", string(f.Family)))
	}
	lines = append(lines, join("today", today.Key()))

	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func join(parts ...string) string {
	return strings.Join(parts, "|")
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func minutes(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprint(*n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
