package quickaction

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/prefill"
)

// Action is one entry of the per-day quick action menu.
type Action string

const (
	ActionAdjustment  Action = "adjustment"
	ActionLeave       Action = "leave"
	ActionWorkPattern Action = "work_pattern"
	ActionHoliday     Action = "holiday"
)

// Actions lists the menu entries in display order.
var Actions = []Action{ActionAdjustment, ActionLeave, ActionWorkPattern, ActionHoliday}

// ParseAction returns false for anything outside the menu.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions {
		if a == known {
			return a, true
		}
	}
	return "", false
}

func (a Action) String() string {
	return string(a)
}

// Label is the menu text of the action.
func (a Action) Label() string {
	switch a {
	case ActionAdjustment:
		return "打刻修正申請"
	case ActionLeave:
		return "休暇申請"
	case ActionWorkPattern:
		return "勤務パターン変更申請"
	case ActionHoliday:
		return "休日出勤申請"
	}
	return ""
}

// DismissReason is a non-explicit way of closing the popover.
type DismissReason string

const (
	DismissOutsideClick DismissReason = "outside_click"
	DismissScroll       DismissReason = "scroll"
	DismissResize       DismissReason = "resize"
	DismissCancelKey    DismissReason = "cancel_key"
)

func ParseDismissReason(s string) (DismissReason, bool) {
	r := DismissReason(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case DismissOutsideClick, DismissScroll, DismissResize, DismissCancelKey:
		return r, true
	}
	return "", false
}

// State is the popover state. The zero value is Closed.
type State struct {
	Open     bool      `json:"open"`
	DateKey  string    `json:"date,omitempty"`
	Anchor   string    `json:"anchor,omitempty"`
	OpenedAt time.Time `json:"opened_at,omitempty"`
}

// MenuItem describes one selectable action for the open date.
type MenuItem struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
}

// Navigation is the outcome of selecting an action: the destination screen
// and the payload stored for it in the prefill store.
type Navigation struct {
	Action  Action          `json:"action"`
	Path    string          `json:"path"`
	Payload prefill.Payload `json:"payload"`
}
