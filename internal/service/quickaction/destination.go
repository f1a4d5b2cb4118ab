package quickaction

import (
	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/quickaction"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/prefill"
)

const (
	PathAdjustmentNew  = "/attendance/adjustments/new"
	PathLeaveNew       = "/leave/new"
	PathWorkPatternNew = "/work-pattern/new"
	PathHolidayWorkNew = "/holiday-work/new"
)

// Destination maps an action to its screen and prefill payload. Only the
// adjustment screen receives the day's effective attendance.
func Destination(action quickaction.Action, dateKey string, eff *attendance.Record) (quickaction.Navigation, error) {
	switch action {
	case quickaction.ActionAdjustment:
		payload := prefill.Payload{"target_date": dateKey}
		if eff != nil {
			if eff.ClockIn != nil {
				payload["clock_in"] = datekey.FormatClock(*eff.ClockIn)
			}
			if eff.ClockOut != nil {
				payload["clock_out"] = datekey.FormatClock(*eff.ClockOut)
			}
			if eff.BreakMinutes != nil {
				payload["break_minutes"] = *eff.BreakMinutes
			}
		}
		return quickaction.Navigation{Action: action, Path: PathAdjustmentNew, Payload: payload}, nil

	case quickaction.ActionLeave:
		return quickaction.Navigation{Action: action, Path: PathLeaveNew, Payload: prefill.Payload{
			"start_date": dateKey,
			"end_date":   dateKey,
		}}, nil

	case quickaction.ActionWorkPattern:
		return quickaction.Navigation{Action: action, Path: PathWorkPatternNew, Payload: prefill.Payload{
			"start_date": dateKey,
			"end_date":   dateKey,
		}}, nil

	case quickaction.ActionHoliday:
		return quickaction.Navigation{Action: action, Path: PathHolidayWorkNew, Payload: prefill.Payload{
			"work_date": dateKey,
		}}, nil
	}
	return quickaction.Navigation{}, quickaction.ErrUnknownAction
}
