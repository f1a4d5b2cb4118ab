package calendar

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/validator"
)

// MonthRequest selects a month from the "year" and "month" query parameters.
// Empty values default to the current month.
type MonthRequest struct {
	Year  string
	Month string

	parsed datekey.Month
}

func (r *MonthRequest) Validate(today datekey.Date) error {
	var errs validator.ValidationErrors

	r.parsed = datekey.MonthOf(today)

	if !validator.IsEmpty(r.Year) {
		y, err := strconv.Atoi(r.Year)
		if !validator.IsNumeric(r.Year) || err != nil || y < 1970 || y > 9999 {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be a four digit year",
			})
		} else {
			r.parsed.Year = y
		}
	}

	if !validator.IsEmpty(r.Month) {
		m, err := strconv.Atoi(r.Month)
		if !validator.IsNumeric(r.Month) || err != nil || m < 1 || m > 12 {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		} else {
			r.parsed.Month = time.Month(m)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Target returns the validated month.
func (r *MonthRequest) Target() datekey.Month {
	return r.parsed
}

type DayRequest struct {
	Date string
}

func (r *DayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := datekey.Parse(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Key returns the normalized date key.
func (r *DayRequest) Key() string {
	d, _ := datekey.Parse(r.Date)
	return d.Key()
}

type VisibilityRequest struct {
	Visible *bool `json:"visible"`
}

func (r *VisibilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Visible == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "visible",
			Message: "visible is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ChangedEvent is the payload of the "calendar.changed" stream event.
type ChangedEvent struct {
	Version int64      `json:"version"`
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
