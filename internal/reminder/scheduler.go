package reminder

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// GocronScheduler runs one-time jobs on a gocron scheduler.
type GocronScheduler struct {
	scheduler gocron.Scheduler
}

// NewGocronScheduler creates and starts a scheduler driven by clock.
func NewGocronScheduler(clock clockwork.Clock) (*GocronScheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	s.Start()
	return &GocronScheduler{scheduler: s}, nil
}

// At schedules fn to run once at the given instant.
func (g *GocronScheduler) At(at time.Time, fn func()) error {
	_, err := g.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(fn),
		gocron.WithName("notification-reset"),
		// removes the job once it has run
		gocron.WithLimitedRuns(1),
	)
	if err != nil {
		return fmt.Errorf("failed to create reset job: %w", err)
	}
	return nil
}

// Pending returns the number of jobs not yet run.
func (g *GocronScheduler) Pending() int {
	return len(g.scheduler.Jobs())
}

// Close shuts the scheduler down.
func (g *GocronScheduler) Close() error {
	return g.scheduler.Shutdown()
}
