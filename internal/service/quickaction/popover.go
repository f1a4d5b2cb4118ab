package quickaction

import (
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/quickaction"
)

// Popover is the open/close state machine of the per-day action menu. It
// is not safe for concurrent use.
//
// Closed --toggle(d)--> Open(d)
// Open(d) --toggle(d)--> Closed
// Open(d) --toggle(e)--> Open(e)
// Open(d) --dismiss--> Closed, ignored while younger than minDisplay
// Open(d) --select--> Closed
type Popover struct {
	minDisplay time.Duration
	now        func() time.Time
	state      quickaction.State
}

func NewPopover(minDisplay time.Duration, now func() time.Time) *Popover {
	if now == nil {
		now = time.Now
	}
	return &Popover{minDisplay: minDisplay, now: now}
}

// Toggle handles the day's "add" affordance. Re-clicking the open date is an
// explicit close; another date replaces the open one.
func (p *Popover) Toggle(dateKey, anchor string) quickaction.State {
	if p.state.Open && p.state.DateKey == dateKey {
		p.Close()
		return p.state
	}
	p.state = quickaction.State{
		Open:     true,
		DateKey:  dateKey,
		Anchor:   anchor,
		OpenedAt: p.now(),
	}
	return p.state
}

// Dismiss closes the popover for a non-explicit reason and reports whether
// it closed. Within the minimum display window the request is ignored.
func (p *Popover) Dismiss(reason quickaction.DismissReason) (quickaction.State, bool) {
	if !p.state.Open {
		return p.state, false
	}
	if p.now().Sub(p.state.OpenedAt) < p.minDisplay {
		return p.state, false
	}
	p.Close()
	return p.state, true
}

// Close is the explicit close used by toggle and select.
func (p *Popover) Close() {
	p.state = quickaction.State{}
}

func (p *Popover) State() quickaction.State {
	return p.state
}
