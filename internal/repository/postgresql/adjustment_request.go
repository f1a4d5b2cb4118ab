package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
)

type adjustmentRequestRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewAdjustmentRequestRepository(db *database.DB, loc *time.Location) adjustment.AdjustmentRequestRepository {
	return &adjustmentRequestRepositoryImpl{db: db, loc: loc}
}

// ListByEmployee implements adjustment.AdjustmentRequestRepository.
func (r *adjustmentRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]adjustment.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.id, ar.employee_id, ar.target_date::text,
			   ar.new_clock_in, ar.new_clock_out, ar.new_break_minutes,
			   ar.status::text, COALESCE(ar.reason, ''), ar.rejection_reason, ar.updated_at
		FROM attendance_adjustment_requests ar
		WHERE ar.employee_id = $1
		ORDER BY ar.created_at, ar.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustment requests: %w", err)
	}
	defer rows.Close()

	var requests []adjustment.Request
	for rows.Next() {
		var (
			ar     adjustment.Request
			status string
		)
		err := rows.Scan(
			&ar.ID,
			&ar.EmployeeID,
			&ar.TargetDate,
			&ar.NewClockIn,
			&ar.NewClockOut,
			&ar.NewBreakMinutes,
			&status,
			&ar.Reason,
			&ar.RejectionComment,
			&ar.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment request: %w", err)
		}
		ar.Status = workflow.ParseStatus(status)
		ar.NewClockIn = inLocation(ar.NewClockIn, r.loc)
		ar.NewClockOut = inLocation(ar.NewClockOut, r.loc)
		requests = append(requests, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
