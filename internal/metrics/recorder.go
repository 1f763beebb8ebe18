// Package metrics exposes the clock's state for scraping. Components take a
// Recorder and default to NoopRecorder, so nothing needs nil checks and
// metrics stay off unless `watch --metrics-addr` is given.
package metrics

import "github.com/rezmoss/standupclock/internal/schedule"

// NotifyResult labels notification dispatch outcomes.
type NotifyResult string

const (
	NotifySent   NotifyResult = "sent"
	NotifyFailed NotifyResult = "failed"
)

// Recorder receives one observation per tick plus notification outcomes.
type Recorder interface {
	ObserveTick(st schedule.State)
	IncNotification(result NotifyResult)
	SetNotificationsEnabled(enabled bool)
}

// NoopRecorder is the default Recorder.
type NoopRecorder struct{}

func (NoopRecorder) ObserveTick(schedule.State)   {}
func (NoopRecorder) IncNotification(NotifyResult) {}
func (NoopRecorder) SetNotificationsEnabled(bool) {}
