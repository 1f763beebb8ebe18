//go:build windows

package notify

import "os/exec"

type windowsSender struct {
	available bool
}

func newWindowsSender() Sender {
	return &windowsSender{available: toolAvailable("powershell")}
}

func newDarwinSender() Sender { return noopSender{} }
func newLinuxSender() Sender  { return noopSender{} }

func (s *windowsSender) Send(n Notification) error {
	if !s.available {
		return nil
	}
	return exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", toastScript(n)).Run()
}

func (s *windowsSender) Available() bool { return s.available }
