//go:build windows
// +build windows

// Package keybdscan simulates key presses through SendInput with hardware
// scan codes. Where Winds Meet reads input at the DirectInput level and
// drops plain virtual-key injection, so its profile uses this backend.
package keybdscan

import (
	"fmt"
	"unsafe"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Constants for SendInput keyboard events
const (
	inputKeyboard     = 1      // INPUT_KEYBOARD
	keyEventFKeyUp    = 0x0002 // KEYEVENTF_KEYUP
	keyEventFScanCode = 0x0008 // KEYEVENTF_SCANCODE
	vkShift           = 0x10   // VK_SHIFT
	mapVkToVsc        = 0      // MAPVK_VK_TO_VSC
)

// keybdInput mirrors the Win32 KEYBDINPUT struct.
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors the Win32 INPUT struct with its keyboard union arm. The
// trailing padding covers the larger MOUSEINPUT arm.
type input struct {
	inputType uint32
	_         uint32
	ki        keybdInput
	_         [8]byte
}

// Load the user32.dll library and required functions
var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procSendInput      = user32.NewProc("SendInput")
	procVkKeyScanW     = user32.NewProc("VkKeyScanW")
	procMapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

// Client simulates scan-code presses on Windows.
type Client struct {
	logger contracts.Logger
}

// NewKeyboard creates the scan-code backend.
func NewKeyboard(logger contracts.Logger) (contracts.Keyboard, error) {
	logger.Info("Scan-code keyboard backend created")
	return &Client{logger: logger}, nil
}

// Press presses and holds the key.
func (c *Client) Press(key string) error {
	return c.send(key, keyEventFScanCode)
}

// Release releases a previously pressed key.
func (c *Client) Release(key string) error {
	return c.send(key, keyEventFScanCode|keyEventFKeyUp)
}

// send injects one scan-code keyboard event for the key symbol.
func (c *Client) send(key string, flags uint32) error {
	scan, err := scanCode(key)
	if err != nil {
		return err
	}

	in := input{
		inputType: inputKeyboard,
		ki:        keybdInput{wScan: scan, dwFlags: flags},
	}
	n, _, callErr := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n == 0 {
		return fmt.Errorf("SendInput rejected key %q: %v", key, callErr)
	}
	return nil
}

// scanCode maps a key symbol to its hardware scan code via the active
// keyboard layout.
func scanCode(key string) (uint16, error) {
	var vk uint16
	if key == "shift" {
		vk = vkShift
	} else {
		runes := []rune(key)
		if len(runes) != 1 {
			return 0, fmt.Errorf("unsupported key symbol %q", key)
		}
		r0, _, _ := procVkKeyScanW.Call(uintptr(uint16(runes[0])))
		res := int16(r0)
		if res == -1 {
			return 0, fmt.Errorf("no virtual key for symbol %q", key)
		}
		vk = uint16(res) & 0xFF
	}

	r0, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapVkToVsc)
	if r0 == 0 {
		return 0, fmt.Errorf("no scan code for symbol %q", key)
	}
	return uint16(r0), nil
}
