package calendar

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/sse"
)

// Aggregator loads and expands the four request families for one month.
// It never fails as a whole: a family that cannot be loaded is empty and
// listed in Aggregate.Failures.
type Aggregator interface {
	Aggregate(ctx context.Context, employeeID string, year int, month time.Month) Aggregate
}

// Service is the view-facing side of the engine.
type Service interface {
	// MonthView opens (or switches to) a month for the employee and returns
	// its current view.
	MonthView(ctx context.Context, employeeID string, year int, month time.Month) (*MonthView, error)

	// ExportView builds a standalone view of any month. The employee's open
	// session and its visible month are left alone.
	ExportView(ctx context.Context, employeeID string, year int, month time.Month) (*MonthView, error)

	// Detail returns the attendance detail of a date in the visible month.
	Detail(ctx context.Context, employeeID string, dateKey string) (attendance.Detail, error)

	// Refresh runs a reconciliation pass now, outside the periodic tick.
	Refresh(ctx context.Context, employeeID string) (RefreshResult, error)

	// SetVisibility pauses or resumes the employee's refresh loop.
	SetVisibility(ctx context.Context, employeeID string, visible bool) error

	// Subscribe streams "calendar changed" events for the employee.
	Subscribe(employeeID string) (chan sse.Event, func())
}
