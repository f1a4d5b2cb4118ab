package schedule

import "context"

type PatternRequestRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]PatternRequest, error)
}
