// Package service holds background tasks that run next to the request
// handlers
package service

import (
	"time"

	"avolkov/resume-api/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionReaper periodically deletes expired session rows. The guard
// re-checks expiry on every request anyway, the reaper only bounds
// table growth. It keeps no state between ticks.
type SessionReaper struct {
	sessions *store.SessionStore
	cron     *cron.Cron
	every    time.Duration
}

func NewSessionReaper(sessions *store.SessionStore, every time.Duration) *SessionReaper {
	r := &SessionReaper{
		sessions: sessions,
		cron:     cron.New(),
		every:    every,
	}

	r.cron.Schedule(cron.Every(every), cron.FuncJob(r.reap))

	return r
}

func (r *SessionReaper) Start() {
	r.cron.Start()
	zap.L().Debug("Session reaper attached", zap.Duration("tick_every", r.every))
}

// Stop halts the schedule and waits for a running purge to finish.
func (r *SessionReaper) Stop() {
	<-r.cron.Stop().Done()
	zap.L().Debug("Session reaper stopped")
}

func (r *SessionReaper) reap() {
	n, err := r.sessions.PurgeExpired()
	if err != nil {
		zap.L().Error("Failed to purge expired sessions", zap.Error(err))
		return
	}

	if n > 0 {
		zap.L().Info("Purged expired sessions", zap.Int64("count", n))
	}
}
