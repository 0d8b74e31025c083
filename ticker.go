package personastate

import (
	"context"
	"log"
	"time"
)

// ──────────────────────────────────────────────
// Decay Scheduler — periodic idle decay for active sessions
// ──────────────────────────────────────────────

// DecayScheduler periodically applies time decay to sessions that have not
// seen an interaction for at least MinIdle. Sessions that interact normally
// are left alone: ProcessInteraction already accounts for elapsed time.
type DecayScheduler struct {
	manager  *SessionManager
	interval time.Duration
	minIdle  time.Duration
	now      func() time.Time
}

// NewDecayScheduler creates a scheduler. Defaults: 10 minute interval,
// 1 hour minimum idle before decay kicks in.
func NewDecayScheduler(manager *SessionManager, interval, minIdle time.Duration) *DecayScheduler {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if minIdle <= 0 {
		minIdle = time.Hour
	}
	return &DecayScheduler{
		manager:  manager,
		interval: interval,
		minIdle:  minIdle,
		now:      time.Now,
	}
}

// Start runs the scheduler until the context is cancelled.
func (d *DecayScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Printf("[DecayScheduler] Stopped")
				return
			case <-ticker.C:
				d.RunOnce()
			}
		}
	}()
}

// RunOnce applies idle decay to every eligible session. Exposed for tests
// and for callers that drive ticks themselves.
func (d *DecayScheduler) RunOnce() {
	now := d.now()
	d.manager.forEachSession(func(s *Session) {
		s.decayIfIdle(now, d.minIdle)
	})
}
