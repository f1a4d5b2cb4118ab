package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
)

type workPatternRequestRepositoryImpl struct {
	db *database.DB
}

func NewWorkPatternRequestRepository(db *database.DB) schedule.PatternRequestRepository {
	return &workPatternRequestRepositoryImpl{db: db}
}

// ListByEmployee implements schedule.PatternRequestRepository.
// working_days holds ISO day numbers, 1 = Monday .. 7 = Sunday, matching
// work_schedule_times.day_of_week.
func (r *workPatternRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.PatternRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wp.id, wp.employee_id, wp.start_date::text, COALESCE(wp.end_date::text, ''),
			   wp.status::text, to_char(wp.start_time, 'HH24:MI'), to_char(wp.end_time, 'HH24:MI'),
			   wp.break_minutes, wp.working_minutes, wp.working_days, wp.apply_holiday,
			   COALESCE(wp.reason, ''), wp.updated_at
		FROM work_pattern_requests wp
		WHERE wp.employee_id = $1
		ORDER BY wp.created_at, wp.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work pattern requests: %w", err)
	}
	defer rows.Close()

	var requests []schedule.PatternRequest
	for rows.Next() {
		var (
			wp     schedule.PatternRequest
			status string
			days   []int16
		)
		err := rows.Scan(
			&wp.ID,
			&wp.EmployeeID,
			&wp.StartDate,
			&wp.EndDate,
			&status,
			&wp.StartTime,
			&wp.EndTime,
			&wp.BreakMinutes,
			&wp.WorkingMinutes,
			&days,
			&wp.ApplyHoliday,
			&wp.Reason,
			&wp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work pattern request: %w", err)
		}
		wp.Status = workflow.ParseStatus(status)
		for _, d := range days {
			if d >= 1 && d <= 7 {
				wp.Weekdays[d-1] = true
			}
		}
		requests = append(requests, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
