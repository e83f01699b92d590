//go:build unix

package respond

import "os/exec"

// wallNotifier broadcasts to all interactive terminals via wall(1).
type wallNotifier struct{}

// NewSessionNotifier returns the platform session broadcaster.
func NewSessionNotifier() SessionNotifier {
	return wallNotifier{}
}

func (wallNotifier) Broadcast(title, message string) error {
	return exec.Command("wall", title+": "+message).Run()
}

type unixShutdown struct{}

// NewShutdownAgent returns the platform shutdown agent.
func NewShutdownAgent() ShutdownAgent {
	return unixShutdown{}
}

func (unixShutdown) Force() error {
	return exec.Command("poweroff", "-f").Run()
}

func (unixShutdown) Graceful() error {
	return exec.Command("shutdown", "-h", "now").Run()
}
