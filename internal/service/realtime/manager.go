// Package realtime keeps each employee's open calendar month current with a
// per-employee sync loop, and implements the calendar service on top of the
// published views.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/sse"
	calsvc "github.com/cmlabs-hris/attendance-portal/internal/service/calendar"
)

type Manager struct {
	engine      *calsvc.Engine
	hub         *sse.Hub
	interval    time.Duration
	idleTimeout time.Duration
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(engine *calsvc.Engine, hub *sse.Hub, interval, idleTimeout time.Duration) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		engine:      engine,
		hub:         hub,
		interval:    interval,
		idleTimeout: idleTimeout,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
		sessions:    make(map[string]*Session),
	}
}

// SetClock replaces the clock used for idle tracking.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Manager) session(employeeID string, target datekey.Month) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[employeeID]; ok {
		s.touch(m.now())
		return s
	}

	s := newSession(employeeID, target, m.engine, m.hub, m.interval, m.now())
	m.sessions[employeeID] = s
	s.start(m.ctx)
	slog.Info("Calendar session started", "employee_id", employeeID, "month", target.Key())
	return s
}

func (m *Manager) lookup(employeeID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[employeeID]
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

func (m *Manager) MonthView(ctx context.Context, employeeID string, year int, month time.Month) (*calendar.MonthView, error) {
	target := datekey.Month{Year: year, Month: month}
	s := m.session(employeeID, target)
	if s.Target() != target {
		slog.Debug("Calendar session retargeted", "employee_id", employeeID, "from", s.Target().Key(), "to", target.Key())
		s.retarget(target)
	}
	return s.awaitMonth(ctx, target)
}

// ExportView runs a one-off pass for the month on a fresh context.
func (m *Manager) ExportView(ctx context.Context, employeeID string, year int, month time.Month) (*calendar.MonthView, error) {
	target := datekey.Month{Year: year, Month: month}
	res, err := m.engine.Run(ctx, calsvc.NewMonthContext(employeeID, target), "")
	if err != nil {
		return nil, err
	}
	return res.View, nil
}

func (m *Manager) Detail(ctx context.Context, employeeID string, dateKey string) (attendance.Detail, error) {
	v, err := m.currentView(employeeID)
	if err != nil {
		return attendance.Detail{}, err
	}
	d, ok := v.Details[dateKey]
	if !ok {
		return attendance.Detail{}, calendar.ErrDateNotInView
	}
	return d, nil
}

// EffectiveAttendance returns the effective record of a date in the visible
// month, or nil when the day has none.
func (m *Manager) EffectiveAttendance(ctx context.Context, employeeID string, dateKey string) (*attendance.Record, error) {
	v, err := m.currentView(employeeID)
	if err != nil {
		return nil, err
	}
	if _, ok := v.Details[dateKey]; !ok {
		return nil, calendar.ErrDateNotInView
	}
	r, ok := v.Effective[dateKey]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Manager) currentView(employeeID string) (*calendar.MonthView, error) {
	s, ok := m.lookup(employeeID)
	if !ok {
		return nil, calendar.ErrNoActiveView
	}
	v := s.View()
	if v == nil {
		return nil, calendar.ErrNoActiveView
	}
	return v, nil
}

// Refresh forces a pass. When one is already running the refresh is queued
// behind it and reported as skipped.
func (m *Manager) Refresh(ctx context.Context, employeeID string) (calendar.RefreshResult, error) {
	s, ok := m.lookup(employeeID)
	if !ok {
		return calendar.RefreshResult{}, calendar.ErrNoActiveView
	}

	res := s.loop.Force(ctx)
	if res.Err != nil {
		return calendar.RefreshResult{}, res.Err
	}

	out := calendar.RefreshResult{Skipped: res.Skipped, Changed: res.Changed}
	if v := s.View(); v != nil {
		out.Version = v.Version
	}
	return out, nil
}

func (m *Manager) SetVisibility(ctx context.Context, employeeID string, visible bool) error {
	s, ok := m.lookup(employeeID)
	if !ok {
		return calendar.ErrNoActiveView
	}
	s.loop.SetVisible(visible)
	slog.Debug("Calendar visibility changed", "employee_id", employeeID, "visible", visible)
	return nil
}

func (m *Manager) Subscribe(employeeID string) (chan sse.Event, func()) {
	if s, ok := m.lookup(employeeID); ok {
		s.touch(m.now())
	}
	return m.hub.Subscribe(employeeID)
}

// EvictIdle stops sessions that have not been used for the idle timeout and
// have no open stream.
func (m *Manager) EvictIdle(ctx context.Context) error {
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.idleSince().After(cutoff) || m.hub.SubscriberCount(id) > 0 {
			continue
		}
		idle = append(idle, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.stop()
		slog.Info("Calendar session evicted", "employee_id", s.employeeID)
	}
	return nil
}

func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown stops every session loop.
func (m *Manager) Shutdown() {
	m.cancel()

	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.stop()
	}
	slog.Info("Calendar sessions stopped", "count", len(sessions))
}

var _ calendar.Service = (*Manager)(nil)
