package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.start_date::text, COALESCE(lr.end_date::text, ''),
			   lr.status::text, lt.code, lr.duration_type::text, COALESCE(lr.reason, ''),
			   lr.rejection_reason, lr.updated_at
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		ORDER BY lr.submitted_at, lr.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var (
			lr                         leave.Request
			status, code, durationType string
		)
		err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.StartDate,
			&lr.EndDate,
			&status,
			&code,
			&durationType,
			&lr.Reason,
			&lr.RejectionComment,
			&lr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		lr.Status = workflow.ParseStatus(status)
		lr.LeaveType = leave.ParseLeaveType(code)
		lr.TimeUnit = leave.ParseTimeUnit(durationType)
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
