// Package notify displays desktop notifications through the native tool of
// the host OS: notify-send on Linux, osascript on macOS and a PowerShell
// toast on Windows. Other platforms get a sender that reports itself
// unavailable.
package notify

import (
	"os/exec"
	"runtime"

	"github.com/google/uuid"
)

// Notification is a single message to display.
type Notification struct {
	ID    string
	Title string
	Body  string
	Icon  string // optional path to an image
}

// New builds a Notification with a fresh ID.
func New(title, body, icon string) Notification {
	return Notification{
		ID:    uuid.NewString(),
		Title: title,
		Body:  body,
		Icon:  icon,
	}
}

// Sender displays notifications. Send is fire-and-forget: there is no
// delivery confirmation beyond the exit status of the OS tool.
type Sender interface {
	Send(n Notification) error
	// Available reports whether this host can display notifications at all.
	Available() bool
}

// NewSender returns the sender for the current OS.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinSender()
	case "linux":
		return newLinuxSender()
	case "windows":
		return newWindowsSender()
	default:
		return noopSender{}
	}
}

// Platform returns the current operating system name.
func Platform() string {
	return runtime.GOOS
}

func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

type noopSender struct{}

func (noopSender) Send(Notification) error { return nil }
func (noopSender) Available() bool         { return false }
