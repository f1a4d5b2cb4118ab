package holiday

import (
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/workflow"
)

type RequestType string

const (
	RequestTypeHolidayWork RequestType = "HOLIDAY_WORK"
	RequestTypeTransfer    RequestType = "TRANSFER"
)

// Request is a holiday-work or holiday-transfer request. A TRANSFER swaps
// WorkDate (a holiday worked) with TransferHolidayDate (a working day taken
// off). A HOLIDAY_WORK may name a compensatory day off in CompDate.
type Request struct {
	ID                  string
	EmployeeID          string
	RequestType         RequestType
	WorkDate            string
	CompDate            *string
	TakeComp            *bool
	TransferHolidayDate *string
	Status              workflow.Status
	Reason              string
	RejectionComment    *string
	UpdatedAt           time.Time
}

// TakesComp reports whether a compensatory day off was requested.
func (r Request) TakesComp() bool {
	return r.TakeComp != nil && *r.TakeComp && r.CompDate != nil
}

// Custom is a company-configured holiday for the employee's calendar.
type Custom struct {
	HolidayDate string
	HolidayType string
}
