package adjustment

import "context"

type AdjustmentRequestRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
}
