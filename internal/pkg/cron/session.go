package cron

import (
	"context"
	"time"
)

// SessionEvictor stops calendar sessions nobody has looked at recently.
type SessionEvictor interface {
	EvictIdle(ctx context.Context) error
}

type SessionJobs struct {
	evictor  SessionEvictor
	interval time.Duration
}

func NewSessionJobs(evictor SessionEvictor, interval time.Duration) *SessionJobs {
	return &SessionJobs{evictor: evictor, interval: interval}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("evict_idle_calendar_sessions", j.interval, j.evictor.EvictIdle)
}
