package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the time-clock source. It is read-only to the
// attendance portal.
type AttendanceRepository interface {
	// ListMonthly returns the records of one employee for one calendar month,
	// at most one per date.
	ListMonthly(ctx context.Context, employeeID string, year int, month time.Month) ([]Record, error)
}
