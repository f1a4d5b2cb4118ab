package quickaction

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/quickaction"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/prefill"
)

// AttendanceLookup returns the effective attendance of a date in the
// employee's visible month.
type AttendanceLookup interface {
	EffectiveAttendance(ctx context.Context, employeeID string, dateKey string) (*attendance.Record, error)
}

type employeeState struct {
	mu      sync.Mutex
	popover *Popover
	prefill *prefill.Store
}

type QuickActionServiceImpl struct {
	lookup     AttendanceLookup
	minDisplay time.Duration
	now        func() time.Time

	mu        sync.Mutex
	employees map[string]*employeeState
}

func NewQuickActionService(lookup AttendanceLookup, minDisplay time.Duration) *QuickActionServiceImpl {
	return &QuickActionServiceImpl{
		lookup:     lookup,
		minDisplay: minDisplay,
		now:        time.Now,
		employees:  make(map[string]*employeeState),
	}
}

// SetClock replaces the clock driving the minimum display window.
func (s *QuickActionServiceImpl) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *QuickActionServiceImpl) clock() time.Time {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()
	return now()
}

func (s *QuickActionServiceImpl) state(employeeID string) *employeeState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.employees[employeeID]
	if !ok {
		st = &employeeState{
			popover: NewPopover(s.minDisplay, s.clock),
			prefill: prefill.NewStore(),
		}
		s.employees[employeeID] = st
	}
	return st
}

func (s *QuickActionServiceImpl) Toggle(ctx context.Context, employeeID string, req quickaction.ToggleRequest) (quickaction.StateResponse, error) {
	if err := req.Validate(); err != nil {
		return quickaction.StateResponse{}, err
	}

	st := s.state(employeeID)
	st.mu.Lock()
	defer st.mu.Unlock()

	return withMenu(st.popover.Toggle(req.Date, req.Anchor)), nil
}

func (s *QuickActionServiceImpl) Dismiss(ctx context.Context, employeeID string, req quickaction.DismissRequest) (quickaction.StateResponse, error) {
	if err := req.Validate(); err != nil {
		return quickaction.StateResponse{}, err
	}
	reason, _ := quickaction.ParseDismissReason(req.Reason)

	st := s.state(employeeID)
	st.mu.Lock()
	defer st.mu.Unlock()

	state, closed := st.popover.Dismiss(reason)
	if !closed && state.Open {
		slog.Debug("Quick action dismissal ignored", "employee_id", employeeID, "reason", reason, "date", state.DateKey)
	}
	return withMenu(state), nil
}

func (s *QuickActionServiceImpl) Select(ctx context.Context, employeeID string, req quickaction.SelectRequest) (quickaction.Navigation, error) {
	if err := req.Validate(); err != nil {
		return quickaction.Navigation{}, err
	}
	action, _ := quickaction.ParseAction(req.Action)

	st := s.state(employeeID)
	st.mu.Lock()
	defer st.mu.Unlock()

	state := st.popover.State()
	if !state.Open {
		return quickaction.Navigation{}, quickaction.ErrPopoverClosed
	}

	var eff *attendance.Record
	if action == quickaction.ActionAdjustment && s.lookup != nil {
		r, err := s.lookup.EffectiveAttendance(ctx, employeeID, state.DateKey)
		if err != nil {
			slog.Debug("No effective attendance for quick action prefill", "employee_id", employeeID, "date", state.DateKey, "error", err)
		} else {
			eff = r
		}
	}

	nav, err := Destination(action, state.DateKey, eff)
	if err != nil {
		return quickaction.Navigation{}, err
	}
	if err := st.prefill.Set(nav.Path, nav.Payload); err != nil {
		return quickaction.Navigation{}, fmt.Errorf("failed to store prefill for %s: %w", nav.Path, err)
	}
	st.popover.Close()

	slog.Info("Quick action selected", "employee_id", employeeID, "action", action, "date", state.DateKey, "path", nav.Path)
	return nav, nil
}

func (s *QuickActionServiceImpl) State(ctx context.Context, employeeID string) quickaction.StateResponse {
	st := s.state(employeeID)
	st.mu.Lock()
	defer st.mu.Unlock()

	return withMenu(st.popover.State())
}

func (s *QuickActionServiceImpl) ConsumePrefill(ctx context.Context, employeeID string, req quickaction.PrefillRequest) (prefill.Payload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st := s.state(employeeID)
	payload, ok := st.prefill.ConsumeOnce(req.Path)
	if !ok {
		return nil, quickaction.ErrPrefillNotFound
	}
	return payload, nil
}

func withMenu(state quickaction.State) quickaction.StateResponse {
	resp := quickaction.StateResponse{State: state}
	if !state.Open {
		return resp
	}
	for _, a := range quickaction.Actions {
		resp.Menu = append(resp.Menu, quickaction.MenuItem{Action: a, Label: a.Label()})
	}
	return resp
}

var _ quickaction.Service = (*QuickActionServiceImpl)(nil)
