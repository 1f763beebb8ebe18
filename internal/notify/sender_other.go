//go:build !linux && !darwin && !windows

package notify

func newDarwinSender() Sender  { return noopSender{} }
func newLinuxSender() Sender   { return noopSender{} }
func newWindowsSender() Sender { return noopSender{} }
