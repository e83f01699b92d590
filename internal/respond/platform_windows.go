//go:build windows

package respond

import (
	"fmt"
	"os/exec"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	wtsapi32                  = windows.NewLazySystemDLL("wtsapi32.dll")
	procWTSEnumerateSessionsW = wtsapi32.NewProc("WTSEnumerateSessionsW")
	procWTSSendMessageW       = wtsapi32.NewProc("WTSSendMessageW")
	procWTSFreeMemory         = wtsapi32.NewProc("WTSFreeMemory")
)

const (
	wtsCurrentServerHandle = 0
	wtsActive              = 0
	mbOK                   = 0
	messageTimeoutSeconds  = 30
)

type wtsSessionInfo struct {
	SessionID      uint32
	WinStationName *uint16
	State          uint32
}

// wtsNotifier shows a message box on the desktop of every active
// session through the WTS API.
type wtsNotifier struct{}

// NewSessionNotifier returns the platform session broadcaster.
func NewSessionNotifier() SessionNotifier {
	return wtsNotifier{}
}

func (wtsNotifier) Broadcast(title, message string) error {
	titleU, err := windows.UTF16FromString(title)
	if err != nil {
		return err
	}
	messageU, err := windows.UTF16FromString(message)
	if err != nil {
		return err
	}

	var sessions *wtsSessionInfo
	var count uint32
	ret, _, callErr := procWTSEnumerateSessionsW.Call(
		wtsCurrentServerHandle,
		0,
		1,
		uintptr(unsafe.Pointer(&sessions)),
		uintptr(unsafe.Pointer(&count)),
	)
	if ret == 0 {
		return fmt.Errorf("failed to enumerate user sessions: %w", callErr)
	}
	defer procWTSFreeMemory.Call(uintptr(unsafe.Pointer(sessions)))

	infos := unsafe.Slice(sessions, count)
	for _, session := range infos {
		if session.State != wtsActive {
			continue
		}
		var response uint32
		procWTSSendMessageW.Call(
			wtsCurrentServerHandle,
			uintptr(session.SessionID),
			uintptr(unsafe.Pointer(&titleU[0])),
			uintptr((len(titleU)-1)*2),
			uintptr(unsafe.Pointer(&messageU[0])),
			uintptr((len(messageU)-1)*2),
			mbOK,
			messageTimeoutSeconds,
			uintptr(unsafe.Pointer(&response)),
			0,
		)
	}
	return nil
}

type windowsShutdown struct{}

// NewShutdownAgent returns the platform shutdown agent.
func NewShutdownAgent() ShutdownAgent {
	return windowsShutdown{}
}

func (windowsShutdown) Force() error {
	return exec.Command("shutdown", "/s", "/f", "/t", "0").Run()
}

func (windowsShutdown) Graceful() error {
	return exec.Command("shutdown", "/s", "/t", "0").Run()
}
