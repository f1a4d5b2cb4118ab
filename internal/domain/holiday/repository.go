package holiday

import "context"

type HolidayRequestRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
}

type CustomHolidayRepository interface {
	// ListByEmployee returns the company holidays that apply to the employee.
	ListByEmployee(ctx context.Context, employeeID string) ([]Custom, error)
}
