//go:build windows
// +build windows

// Package keybdvirtual simulates key presses through SendInput with
// virtual-key codes. This is the default backend, used for Heartopia.
package keybdvirtual

import (
	"fmt"
	"unsafe"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Constants for SendInput keyboard events
const (
	inputKeyboard  = 1      // INPUT_KEYBOARD
	keyEventFKeyUp = 0x0002 // KEYEVENTF_KEYUP
	vkShift        = 0x10   // VK_SHIFT
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
	user32         = windows.NewLazySystemDLL("user32.dll")
	procSendInput  = user32.NewProc("SendInput")
	procVkKeyScanW = user32.NewProc("VkKeyScanW")
)

// Client simulates virtual-key presses on Windows.
type Client struct {
	logger contracts.Logger
}

// NewKeyboard creates the virtual-key backend.
func NewKeyboard(logger contracts.Logger) (contracts.Keyboard, error) {
	logger.Info("Virtual-key keyboard backend created")
	return &Client{logger: logger}, nil
}

// Press presses and holds the key.
func (c *Client) Press(key string) error {
	return c.send(key, 0)
}

// Release releases a previously pressed key.
func (c *Client) Release(key string) error {
	return c.send(key, keyEventFKeyUp)
}

// send injects one keyboard event for the key symbol.
func (c *Client) send(key string, flags uint32) error {
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}

	in := input{
		inputType: inputKeyboard,
		ki:        keybdInput{wVk: vk, dwFlags: flags},
	}
	n, _, callErr := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n == 0 {
		return fmt.Errorf("SendInput rejected key %q: %v", key, callErr)
	}
	return nil
}

// virtualKey maps a key symbol to its virtual-key code via the active
// keyboard layout.
func virtualKey(key string) (uint16, error) {
	if key == "shift" {
		return vkShift, nil
	}
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, fmt.Errorf("unsupported key symbol %q", key)
	}
	r0, _, _ := procVkKeyScanW.Call(uintptr(uint16(runes[0])))
	scan := int16(r0)
	if scan == -1 {
		return 0, fmt.Errorf("no virtual key for symbol %q", key)
	}
	// Low byte is the virtual-key code; the high byte shift state is not
	// needed since all mapped symbols live on unshifted keys.
	return uint16(scan) & 0xFF, nil
}
