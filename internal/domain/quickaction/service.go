package quickaction

import (
	"context"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/prefill"
)

type Service interface {
	// Toggle handles a click on a day's "add" affordance.
	Toggle(ctx context.Context, employeeID string, req ToggleRequest) (StateResponse, error)

	// Dismiss handles outside clicks, scrolls, resizes and the cancel key.
	Dismiss(ctx context.Context, employeeID string, req DismissRequest) (StateResponse, error)

	// Select writes the prefill payload for the action and closes the popover.
	Select(ctx context.Context, employeeID string, req SelectRequest) (Navigation, error)

	State(ctx context.Context, employeeID string) StateResponse

	// ConsumePrefill hands the payload for path to the destination screen once.
	ConsumePrefill(ctx context.Context, employeeID string, req PrefillRequest) (prefill.Payload, error)
}
