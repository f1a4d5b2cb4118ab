package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db, loc: loc}
}

// ListMonthly implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListMonthly(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	query := `
		SELECT DISTINCT ON (a.date)
			a.employee_id, a.date::text, a.clock_in, a.clock_out,
			a.break_minutes, a.work_hours_in_minutes
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date >= $2::date AND a.date < $3::date
		ORDER BY a.date, a.updated_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, first, first.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var a attendance.Record
		err := rows.Scan(
			&a.EmployeeID,
			&a.Date,
			&a.ClockIn,
			&a.ClockOut,
			&a.BreakMinutes,
			&a.WorkHoursInMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		a.ClockIn = inLocation(a.ClockIn, r.loc)
		a.ClockOut = inLocation(a.ClockOut, r.loc)
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
