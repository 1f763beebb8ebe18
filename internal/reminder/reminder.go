// Package reminder decides when to send the "standup starts in a minute"
// desktop notification and remembers that it was sent.
//
// The per-day state machine is Idle -> Sent -> Idle. The first transition
// happens on the tick whose countdown reads exactly the lead time, i.e. the
// remaining time falls in [lead, lead+1s); with ticks aligned to whole
// seconds exactly one tick per day lands there.
// The second transition is a one-time job ResetAfter (24h) later. It is a
// fixed countdown, not aligned to midnight.
package reminder

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rezmoss/standupclock/internal/logfields"
	"github.com/rezmoss/standupclock/internal/metrics"
	"github.com/rezmoss/standupclock/internal/notify"
	"github.com/rezmoss/standupclock/internal/schedule"
)

// ErrUnsupported is returned when the host cannot display notifications.
var ErrUnsupported = errors.New("desktop notifications are not supported on this system")

// Permission mirrors the browser notification permission model.
type Permission string

const (
	PermissionDefault Permission = "default" // never asked
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ParsePermission maps unknown values to PermissionDefault.
func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted, PermissionDenied:
		return Permission(s)
	default:
		return PermissionDefault
	}
}

// Config is the notification content and timing.
type Config struct {
	Lead       time.Duration
	ResetAfter time.Duration
	Title      string
	Body       string
	Icon       string
}

// DefaultConfig notifies one minute ahead and re-arms after 24 hours.
func DefaultConfig() Config {
	return Config{
		Lead:       time.Minute,
		ResetAfter: 24 * time.Hour,
		Title:      "Standup",
		Body:       "Standup starts in one minute",
	}
}

// State is the notification part of a tick snapshot.
type State struct {
	Permission       Permission
	AlreadySentToday bool
	SentAt           time.Time
}

// Enabled reports whether notifications may be sent.
func (s State) Enabled() bool { return s.Permission == PermissionGranted }

// Scheduler runs fn once at the given instant.
type Scheduler interface {
	At(at time.Time, fn func()) error
	Close() error
}

// Option configures a Reminder.
type Option func(*Reminder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(rm *Reminder) { rm.recorder = r }
}

// WithPermissionStore is called whenever the permission changes so it can
// be persisted for the next start.
func WithPermissionStore(fn func(Permission) error) Option {
	return func(rm *Reminder) { rm.store = fn }
}

// Reminder holds NotificationState. The sent flag is guarded by mu because
// the reset runs on the scheduler's goroutine.
type Reminder struct {
	cfg       Config
	sender    notify.Sender
	scheduler Scheduler
	recorder  metrics.Recorder
	store     func(Permission) error

	mu         sync.Mutex
	permission Permission
	sent       bool
	sentAt     time.Time
}

// New creates a Reminder starting in the Idle state with the permission
// read at startup.
func New(cfg Config, permission Permission, sender notify.Sender, scheduler Scheduler, opts ...Option) *Reminder {
	r := &Reminder{
		cfg:        cfg,
		sender:     sender,
		scheduler:  scheduler,
		recorder:   metrics.NoopRecorder{},
		permission: permission,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.recorder.SetNotificationsEnabled(permission == PermissionGranted)
	return r
}

// State returns a copy of the current notification state.
func (r *Reminder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{Permission: r.permission, AlreadySentToday: r.sent, SentAt: r.sentAt}
}

// RequestPermission asks to enable notifications. A denied permission is not
// asked again. The error is ErrUnsupported when the sender cannot display
// anything.
func (r *Reminder) RequestPermission() (bool, error) {
	if !r.sender.Available() {
		return false, ErrUnsupported
	}
	r.mu.Lock()
	current := r.permission
	r.mu.Unlock()

	switch current {
	case PermissionGranted:
		return true, nil
	case PermissionDenied:
		return false, nil
	}
	return true, r.setPermission(PermissionGranted)
}

// Deny turns notifications off.
func (r *Reminder) Deny() error {
	return r.setPermission(PermissionDenied)
}

func (r *Reminder) setPermission(p Permission) error {
	r.mu.Lock()
	r.permission = p
	r.mu.Unlock()

	r.recorder.SetNotificationsEnabled(p == PermissionGranted)
	slog.Info("Notification permission changed", logfields.Permission(string(p)))
	if r.store != nil {
		return r.store(p)
	}
	return nil
}

// Due reports whether st is the tick that should carry the reminder,
// ignoring permission and the sent flag.
func (r *Reminder) Due(st schedule.State) bool {
	if !st.IsStandupDay || st.IsLate {
		return false
	}
	remaining := st.Remaining()
	return remaining >= r.cfg.Lead && remaining < r.cfg.Lead+time.Second
}

// Check runs the Idle -> Sent transition for st and reports whether a
// notification was dispatched.
func (r *Reminder) Check(st schedule.State) bool {
	if !r.Due(st) {
		return false
	}

	r.mu.Lock()
	if r.permission != PermissionGranted || r.sent {
		r.mu.Unlock()
		return false
	}
	r.sent = true
	r.sentAt = st.Now
	r.mu.Unlock()

	n := notify.New(r.cfg.Title, r.cfg.Body, r.cfg.Icon)
	if err := r.sender.Send(n); err != nil {
		r.recorder.IncNotification(metrics.NotifyFailed)
		slog.Warn("Failed to send standup notification",
			logfields.NotificationID(n.ID),
			logfields.Error(err))
	} else {
		r.recorder.IncNotification(metrics.NotifySent)
		slog.Info("Sent standup notification",
			logfields.NotificationID(n.ID),
			logfields.Deadline(st.Deadline),
			logfields.Remaining(st.Remaining()))
	}

	resetAt := st.Now.Add(r.cfg.ResetAfter)
	if err := r.scheduler.At(resetAt, r.reset); err != nil {
		slog.Error("Failed to schedule notification reset",
			logfields.ResetAt(resetAt),
			logfields.Error(err))
	}
	return true
}

// reset is the Sent -> Idle transition.
func (r *Reminder) reset() {
	r.mu.Lock()
	r.sent = false
	r.mu.Unlock()
	slog.Debug("Notification re-armed")
}

// Close stops the scheduler, dropping a pending reset.
func (r *Reminder) Close() error {
	return r.scheduler.Close()
}
