// Package sweeper purges expired and revoked sessions on a cron schedule.
package sweeper

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the purge hourly.
const DefaultSchedule = "@every 1h"

// Purger removes inactive sessions and reports how many were removed.
type Purger interface {
	SweepSessions(ctx context.Context) (int64, error)
}

// Sweeper wraps robfig/cron around one purge job.
type Sweeper struct {
	cron     *cron.Cron
	purger   Purger
	schedule string
}

// New builds a Sweeper for schedule, falling back to DefaultSchedule.
func New(purger Purger, schedule string) *Sweeper {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Sweeper{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		purger:   purger,
		schedule: schedule,
	}
}

// Start registers the purge job and starts the scheduler.
func (s *Sweeper) Start(ctx context.Context) error {
	if s == nil || s.purger == nil {
		return fmt.Errorf("session purger is required")
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Printf("sweeper: started schedule=%s", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish.
func (s *Sweeper) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RunOnce purges inactive sessions now.
func (s *Sweeper) RunOnce(ctx context.Context) int64 {
	if ctx.Err() != nil {
		return 0
	}
	removed, err := s.purger.SweepSessions(ctx)
	if err != nil {
		log.Printf("sweeper: purge failed: %v", err)
		return 0
	}
	if removed > 0 {
		log.Printf("sweeper: purged sessions count=%d", removed)
	}
	return removed
}
