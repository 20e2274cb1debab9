//go:build windows
// +build windows

// Package focus probes whether the target game window holds input focus.
package focus

import (
	"strings"
	"unsafe"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Load the user32.dll library and required functions
var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
)

// Checker inspects the foreground window title.
type Checker struct{}

// New creates the platform focus checker.
func New() contracts.FocusChecker {
	return &Checker{}
}

// GameActive reports whether the foreground window title contains the
// fragment. Probe failures report true so playback is never blocked by a
// broken detection path.
func (c *Checker) GameActive(titleFragment string) bool {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return true
	}

	var buf [256]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return true
	}

	title := strings.ToLower(windows.UTF16ToString(buf[:n]))
	return strings.Contains(title, titleFragment)
}
