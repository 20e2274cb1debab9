//go:build windows
// +build windows

// Package capturewindows streams note events from a MIDI input device via
// the winmm API, feeding the live passthrough mode.
package capturewindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type hMidiIn windows.Handle

// Constants for callback flags
const (
	callbackFunction = 0x00030000 // The callback parameter is a function
	midiIOStatus     = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	mimOpen  = 0x3C1 // MIDI device opened
	mimClose = 0x3C2 // MIDI device closed
	mimData  = 0x3C3 // MIDI data received
	mimError = 0x3C5 // MIDI error
)

// MIDI status nibbles for note traffic
const (
	statusNoteOn  = 0x90
	statusNoteOff = 0x80
)

// midiInCaps mirrors the winmm MIDIINCAPSW struct.
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Source manages MIDI input on Windows.
type Source struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	handle       hMidiIn
	connected    bool
	mu           sync.Mutex
	callback     uintptr
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// ErrNoDevices is returned when no MIDI input device is present.
var ErrNoDevices = errors.New("no MIDI devices found")

// NewSource creates a MIDI source for Windows.
func NewSource(logger contracts.Logger) (contracts.MIDISource, error) {
	logger.Info("MIDI source created for Windows")
	return &Source{logger: logger}, nil
}

// Devices lists the available MIDI input devices.
func (s *Source) Devices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		s.logger.Warn("No MIDI devices found")
		return nil, ErrNoDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			s.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// Select connects to a MIDI input device by index.
func (s *Source) Select(deviceID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		if err := s.closeLocked(); err != nil {
			return fmt.Errorf("failed to close previous MIDI connection: %w", err)
		}
	}

	s.callback = windows.NewCallback(midiInCallback)
	fdwOpen := uintptr(callbackFunction | midiIOStatus)

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&s.handle)),
		uintptr(deviceID),
		s.callback,
		uintptr(unsafe.Pointer(s)),
		fdwOpen,
	)
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to open MIDI device %d: %v", deviceID, err))
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	s.connected = true
	s.logger.Info(fmt.Sprintf("MIDI device %d connected", deviceID))
	return nil
}

// Listen starts delivering decoded note events to the channel.
func (s *Source) Listen(events chan<- contracts.NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		s.logger.Error("Cannot listen: no MIDI device selected")
		return
	}
	if s.handle == 0 {
		s.logger.Error("Invalid MIDI device handle")
		return
	}

	s.eventChannel.Store(events)

	r1, _, err := procMidiInStart.Call(uintptr(s.handle))
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to start MIDI capture: %v", err))
		return
	}
	s.logger.Info("MIDI capture started")
}

// midiInCallback decodes incoming MIDI messages into note events.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	s := (*Source)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case mimOpen:
		s.logger.Info("MIDI device opened")
	case mimClose:
		s.logger.Info("MIDI device closed")
	case mimData:
		status := byte(dwParam1 & 0xFF)
		pitch := byte((dwParam1 >> 8) & 0xFF)
		velocity := byte((dwParam1 >> 16) & 0xFF)

		var event contracts.NoteEvent
		switch status & 0xF0 {
		case statusNoteOn:
			// A note-on with velocity zero is a note end.
			event = contracts.NoteEvent{Pitch: pitch, Velocity: velocity, On: velocity > 0}
		case statusNoteOff:
			event = contracts.NoteEvent{Pitch: pitch, Velocity: velocity, On: false}
		default:
			return 0 // not note traffic
		}

		if ch, ok := s.eventChannel.Load().(chan<- contracts.NoteEvent); ok && ch != nil {
			select {
			case ch <- event:
			default:
				s.logger.Warn("MIDI event channel is full; event discarded")
			}
		}
	case mimError:
		s.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	}

	return 0
}

// Close terminates capture and disconnects the device.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		s.logger.Warn("No MIDI device is connected")
		return nil
	}
	if err := s.closeLocked(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	s.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// closeLocked stops the capture and releases resources.
func (s *Source) closeLocked() error {
	if s.handle == 0 {
		return fmt.Errorf("invalid MIDI device handle")
	}

	r1, _, err := procMidiInStop.Call(uintptr(s.handle))
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to stop MIDI capture: %v", err))
		return err
	}

	r1, _, err = procMidiInClose.Call(uintptr(s.handle))
	if r1 != 0 {
		s.logger.Error(fmt.Sprintf("Failed to close MIDI device: %v", err))
		return err
	}

	s.connected = false
	s.handle = 0
	s.eventChannel.Store((chan<- contracts.NoteEvent)(nil))
	return nil
}
