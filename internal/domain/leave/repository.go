package leave

import "context"

type LeaveRequestRepository interface {
	// ListByEmployee returns every leave request of the employee, unfiltered
	// by month or status.
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
}
