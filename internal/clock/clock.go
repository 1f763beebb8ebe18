// Package clock is the Schedule Clock: it samples the time once per tick,
// derives the schedule state, runs the reminder side effect and publishes a
// Snapshot. Ticks are re-armed for the next whole second instead of running
// on a fixed interval, so they lock onto second boundaries.
package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rezmoss/standupclock/internal/logfields"
	"github.com/rezmoss/standupclock/internal/metrics"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

// Snapshot is what one tick publishes to the display.
type Snapshot struct {
	schedule.State
	Notification reminder.State
	Notified     bool // this tick dispatched the reminder
}

// Clock owns the schedule and the reminder. Tick and Run belong to a single
// goroutine; SetSchedule may be called from any goroutine.
type Clock struct {
	mu       sync.RWMutex
	schedule schedule.Schedule
	reminder *reminder.Reminder
	clock    clockwork.Clock
	recorder metrics.Recorder
	publish  func(Snapshot)
}

type Option func(*Clock)

func WithClock(c clockwork.Clock) Option {
	return func(cl *Clock) { cl.clock = c }
}

func WithRecorder(r metrics.Recorder) Option {
	return func(cl *Clock) { cl.recorder = r }
}

// WithPublisher sets the function that receives every Snapshot.
func WithPublisher(fn func(Snapshot)) Option {
	return func(cl *Clock) { cl.publish = fn }
}

func New(s schedule.Schedule, r *reminder.Reminder, opts ...Option) *Clock {
	c := &Clock{
		schedule: s,
		reminder: r,
		clock:    clockwork.NewRealClock(),
		recorder: metrics.NoopRecorder{},
		publish:  func(Snapshot) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule returns the active schedule.
func (c *Clock) Schedule() schedule.Schedule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schedule
}

// SetSchedule replaces the schedule from the next tick on.
func (c *Clock) SetSchedule(s schedule.Schedule) {
	c.mu.Lock()
	c.schedule = s
	c.mu.Unlock()
}

// Reminder exposes the notification state machine.
func (c *Clock) Reminder() *reminder.Reminder { return c.reminder }

// Now reads the underlying clock.
func (c *Clock) Now() time.Time { return c.clock.Now() }

// Tick processes one tick at now and publishes the result.
func (c *Clock) Tick(now time.Time) Snapshot {
	st := c.Schedule().Compute(now)
	notified := c.reminder.Check(st)
	c.recorder.ObserveTick(st)

	snap := Snapshot{
		State:        st,
		Notification: c.reminder.State(),
		Notified:     notified,
	}
	c.publish(snap)
	return snap
}

// Run ticks until ctx is done. There is exactly one pending timer at any
// time and it is stopped on every return path.
func (c *Clock) Run(ctx context.Context) error {
	slog.Info("Clock started")
	var prev *Snapshot
	for {
		now := c.clock.Now()
		snap := c.Tick(now)
		if snap.Notified {
			slog.Debug("Reminder dispatched on tick", logfields.Deadline(snap.Deadline))
		}
		if lateChanged(prev, snap) {
			slog.Info("Standup lateness changed",
				logfields.Deadline(snap.Deadline),
				logfields.Late(snap.IsLate))
		}
		prev = &snap

		timer := c.clock.NewTimer(schedule.NextDelay(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Clock stopped")
			return ctx.Err()
		case <-timer.Chan():
		}
	}
}

// lateChanged reports a flip of IsLate between consecutive ticks of a
// standup day. The first tick only logs when already late.
func lateChanged(prev *Snapshot, cur Snapshot) bool {
	if !cur.IsStandupDay {
		return false
	}
	if prev == nil {
		return cur.IsLate
	}
	return prev.IsLate != cur.IsLate
}
