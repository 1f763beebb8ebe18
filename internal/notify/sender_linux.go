//go:build linux

package notify

import (
	"os"
	"os/exec"
)

type linuxSender struct {
	available bool
}

func newLinuxSender() Sender {
	return &linuxSender{available: toolAvailable("notify-send") && hasDisplay()}
}

func newDarwinSender() Sender  { return noopSender{} }
func newWindowsSender() Sender { return noopSender{} }

// hasDisplay checks for an X11 or Wayland session.
func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func (s *linuxSender) Send(n Notification) error {
	if !s.available {
		return nil
	}
	args := []string{"-a", "standupclock"}
	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}
	args = append(args, n.Title, n.Body)
	return exec.Command("notify-send", args...).Run()
}

func (s *linuxSender) Available() bool { return s.available }
