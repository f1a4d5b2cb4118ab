package adjustment

import (
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
)

// Request proposes a correction to one day's punches. Nil New* fields leave
// the corresponding raw value untouched.
type Request struct {
	ID               string
	EmployeeID       string
	TargetDate       string
	NewClockIn       *time.Time
	NewClockOut      *time.Time
	NewBreakMinutes  *int
	Status           workflow.Status
	Reason           string
	RejectionComment *string
	UpdatedAt        time.Time
}
