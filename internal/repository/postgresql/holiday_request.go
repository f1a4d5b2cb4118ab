package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
)

type holidayRequestRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRequestRepository(db *database.DB) holiday.HolidayRequestRepository {
	return &holidayRequestRepositoryImpl{db: db}
}

// ListByEmployee implements holiday.HolidayRequestRepository.
func (r *holidayRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]holiday.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT hr.id, hr.employee_id, hr.request_type::text, hr.work_date::text,
			   hr.comp_date::text, hr.take_comp, hr.transfer_holiday_date::text,
			   hr.status::text, COALESCE(hr.reason, ''), hr.rejection_reason, hr.updated_at
		FROM holiday_work_requests hr
		WHERE hr.employee_id = $1
		ORDER BY hr.created_at, hr.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holiday requests: %w", err)
	}
	defer rows.Close()

	var requests []holiday.Request
	for rows.Next() {
		var (
			hr                  holiday.Request
			requestType, status string
		)
		err := rows.Scan(
			&hr.ID,
			&hr.EmployeeID,
			&requestType,
			&hr.WorkDate,
			&hr.CompDate,
			&hr.TakeComp,
			&hr.TransferHolidayDate,
			&status,
			&hr.Reason,
			&hr.RejectionComment,
			&hr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday request: %w", err)
		}
		hr.RequestType = holiday.RequestType(strings.ToUpper(requestType))
		hr.Status = workflow.ParseStatus(status)
		requests = append(requests, hr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

type customHolidayRepositoryImpl struct {
	db *database.DB
}

func NewCustomHolidayRepository(db *database.DB) holiday.CustomHolidayRepository {
	return &customHolidayRepositoryImpl{db: db}
}

// ListByEmployee implements holiday.CustomHolidayRepository.
func (r *customHolidayRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]holiday.Custom, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ch.holiday_date::text, ch.holiday_type
		FROM company_holidays ch
		INNER JOIN employees e ON e.company_id = ch.company_id
		WHERE e.id = $1
		ORDER BY ch.holiday_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query company holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Custom
	for rows.Next() {
		var h holiday.Custom
		if err := rows.Scan(&h.HolidayDate, &h.HolidayType); err != nil {
			return nil, fmt.Errorf("failed to scan company holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}
