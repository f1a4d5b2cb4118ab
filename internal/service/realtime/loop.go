package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/trylock"
)

// PassFunc runs one reconciliation pass and reports whether the published
// view changed.
type PassFunc func(ctx context.Context) (changed bool, err error)

// Result is the outcome of one Trigger.
type Result struct {
	Skipped bool
	Changed bool
	Err     error
}

// Loop drives passes on a fixed interval while visible. Passes never
// overlap: a tick that finds one in flight is skipped.
type Loop struct {
	name     string
	interval time.Duration
	pass     PassFunc

	gate    trylock.Mutex
	rerun   atomic.Bool
	visible atomic.Bool
	wake    chan struct{}
}

func NewLoop(name string, interval time.Duration, pass PassFunc) *Loop {
	l := &Loop{
		name:     name,
		interval: interval,
		pass:     pass,
		wake:     make(chan struct{}, 1),
	}
	l.visible.Store(true)
	return l
}

// Run blocks until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Debug("Sync loop started", "name", l.name, "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Sync loop stopping", "name", l.name)
			return
		case <-ticker.C:
			if l.visible.Load() {
				l.Trigger(ctx)
			}
		case <-l.wake:
			l.Trigger(ctx)
		}
	}
}

// Trigger runs a pass now unless one is already in flight, in which case the
// call is skipped.
func (l *Loop) Trigger(ctx context.Context) Result {
	if !l.gate.TryAcquire() {
		return Result{Skipped: true}
	}
	return l.drain(ctx)
}

// Force runs a pass now. When one is already in flight it is queued to run
// again right after, and the call returns Skipped.
func (l *Loop) Force(ctx context.Context) Result {
	l.rerun.Store(true)
	if !l.gate.TryAcquire() {
		return Result{Skipped: true}
	}
	return l.drain(ctx)
}

// drain runs passes while holding the gate until no rerun is queued.
func (l *Loop) drain(ctx context.Context) Result {
	for {
		l.rerun.Store(false)
		res := l.runPass(ctx)
		l.gate.Release()

		if !l.rerun.Load() || ctx.Err() != nil {
			return res
		}
		if !l.gate.TryAcquire() {
			return res
		}
	}
}

func (l *Loop) runPass(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("sync pass panicked: %v", r)}
			slog.Error("Sync pass panicked", "name", l.name, "panic", r)
		}
	}()

	changed, err := l.pass(ctx)
	if err != nil {
		slog.Warn("Sync pass failed, keeping previous view", "name", l.name, "error", err)
	}
	return Result{Changed: changed, Err: err}
}

// Wake asks Run for a pass on its next iteration without waiting for it.
func (l *Loop) Wake() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// SetVisible pauses or resumes ticking. Becoming visible wakes an immediate
// pass.
func (l *Loop) SetVisible(visible bool) {
	was := l.visible.Swap(visible)
	if visible && !was {
		l.Wake()
	}
}

func (l *Loop) Visible() bool {
	return l.visible.Load()
}

// Busy reports whether a pass is in flight.
func (l *Loop) Busy() bool {
	return l.gate.Held()
}
