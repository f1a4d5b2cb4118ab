package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/sse"
	calsvc "github.com/cmlabs-hris/attendance-portal/internal/service/calendar"
	"github.com/google/uuid"
)

// EventCalendarChanged is pushed to the employee's streams whenever a pass
// publishes a new view.
const EventCalendarChanged = "calendar.changed"

// retryWait bounds how long MonthView waits for an in-flight pass before
// trying again.
const retryWait = 50 * time.Millisecond

const maxMonthAttempts = 100

// Session keeps one employee's visible month current.
type Session struct {
	employeeID string
	engine     *calsvc.Engine
	hub        *sse.Hub
	loop       *Loop

	mu       sync.Mutex
	target   datekey.Month
	lastSeen time.Time
	changed  chan struct{}

	// Owned by the pass holding the loop gate.
	mc       *calsvc.MonthContext
	snapshot string

	view atomic.Pointer[calendar.MonthView]

	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(employeeID string, target datekey.Month, engine *calsvc.Engine, hub *sse.Hub, interval time.Duration, now time.Time) *Session {
	s := &Session{
		employeeID: employeeID,
		engine:     engine,
		hub:        hub,
		target:     target,
		lastSeen:   now,
		changed:    make(chan struct{}),
		done:       make(chan struct{}),
	}
	s.loop = NewLoop("calendar:"+employeeID, interval, s.pass)
	return s
}

func (s *Session) start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	go func() {
		defer close(s.done)
		s.loop.Run(ctx)
	}()
}

func (s *Session) stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *Session) pass(ctx context.Context) (bool, error) {
	target := s.Target()
	if s.mc == nil || s.mc.Month != target {
		s.mc = calsvc.NewMonthContext(s.employeeID, target)
		s.snapshot = ""
	}

	res, err := s.engine.Run(ctx, s.mc, s.snapshot)
	if err != nil {
		return false, err
	}
	s.snapshot = res.Snapshot
	if !res.Changed {
		return false, nil
	}

	s.publish(res.View)
	return true, nil
}

// publish swaps in a complete view, wakes waiters and notifies streams.
func (s *Session) publish(v *calendar.MonthView) {
	s.view.Store(v)

	s.mu.Lock()
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()

	s.hub.Publish(s.employeeID, sse.Event{
		ID:         uuid.NewString(),
		EmployeeID: s.employeeID,
		Event:      EventCalendarChanged,
		Data: calendar.ChangedEvent{
			Version: v.Version,
			Year:    v.Year,
			Month:   v.Month,
		},
	})
}

// View returns the last published view, or nil before the first pass.
func (s *Session) View() *calendar.MonthView {
	return s.view.Load()
}

func (s *Session) Target() datekey.Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Session) retarget(m datekey.Month) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = m
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) changedCh() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// awaitMonth returns the view of m, running passes as needed. It waits out a
// pass that is in flight for another target. When another caller keeps
// switching the session away, it gives up after maxMonthAttempts passes.
func (s *Session) awaitMonth(ctx context.Context, m datekey.Month) (*calendar.MonthView, error) {
	for attempt := 0; ; attempt++ {
		ch := s.changedCh()
		if v := s.View(); v != nil && v.Year == m.Year && v.Month == m.Month {
			return v, nil
		}
		if attempt >= maxMonthAttempts {
			return nil, calendar.ErrNoActiveView
		}
		if s.Target() != m {
			s.retarget(m)
		}

		res := s.loop.Trigger(ctx)
		if res.Err != nil {
			return nil, res.Err
		}
		if !res.Skipped {
			continue
		}

		timer := time.NewTimer(retryWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-ch:
		case <-timer.C:
		}
		timer.Stop()
	}
}
