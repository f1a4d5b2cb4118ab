package quickaction

import (
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/validator"
)

type ToggleRequest struct {
	Date   string `json:"date"`
	Anchor string `json:"anchor"`
}

func (r *ToggleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := datekey.Parse(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.Date = d.Key()
	}

	if validator.ExceedsLength(r.Anchor, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "anchor",
			Message: "anchor must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DismissRequest struct {
	Reason string `json:"reason"`
}

func (r *DismissRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := ParseDismissReason(r.Reason); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be one of outside_click, scroll, resize, cancel_key",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SelectRequest struct {
	Action string `json:"action"`
}

func (r *SelectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if _, ok := ParseAction(r.Action); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of adjustment, leave, work_pattern, holiday",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PrefillRequest struct {
	Path string
}

func (r *PrefillRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Path) {
		errs = append(errs, validator.ValidationError{
			Field:   "path",
			Message: "path is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// StateResponse is the popover state plus the menu for the open date.
type StateResponse struct {
	State
	Menu []MenuItem `json:"menu,omitempty"`
}
