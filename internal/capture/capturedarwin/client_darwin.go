//go:build darwin
// +build darwin

// Package capturedarwin streams note events from a MIDI input device via
// CoreMIDI, feeding the live passthrough mode.
package capturedarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoDevices       = errors.New("no MIDI devices found")
	ErrInvalidDevice   = errors.New("invalid MIDI device")
	ErrConnection      = errors.New("error connecting to MIDI device")
	ErrCreateInputPort = errors.New("error creating input port")
)

// MIDI status nibbles for note traffic
const (
	statusNoteOn  = 0x90
	statusNoteOff = 0x80
)

// portConnection is the disconnectable handle CoreMIDI returns.
type portConnection interface {
	Disconnect()
}

// Source manages MIDI input on Darwin (macOS) systems.
type Source struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	client       coremidi.Client
	inputPort    coremidi.InputPort
	portConn     portConnection
	mu           sync.Mutex
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

// NewSource creates a MIDI source backed by CoreMIDI.
func NewSource(logger contracts.Logger) (contracts.MIDISource, error) {
	client, err := coremidi.NewClient("Maestro Live Input")
	if err != nil {
		return nil, err
	}
	logger.Info("MIDI source created for macOS")
	return &Source{logger: logger, client: client}, nil
}

// Devices lists the available MIDI input devices.
func (s *Source) Devices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		s.logger.Warn(ErrNoDevices.Error())
		return nil, ErrNoDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// Select connects to a MIDI input device by index. A previous connection
// is dropped first.
func (s *Source) Select(deviceID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		s.logger.Error(ErrInvalidDevice.Error())
		return ErrInvalidDevice
	}

	if s.portConn != nil {
		s.portConn.Disconnect()
		s.portConn = nil
	}

	source := sources[deviceID]
	s.logger.Info("MIDI device selected",
		s.logger.Field().Int("deviceID", deviceID),
		s.logger.Field().String("deviceName", source.Name()))

	s.inputPort, err = coremidi.NewInputPort(s.client, "Input Port", s.handlePacket)
	if err != nil {
		s.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	s.portConn, err = s.inputPort.Connect(source)
	if err != nil {
		s.logger.Error(ErrConnection.Error())
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	s.logger.Info("MIDI device successfully connected")
	return nil
}

// handlePacket decodes an incoming packet into a note event and delivers
// it to the listener channel.
func (s *Source) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	s.wg.Add(1)
	defer s.wg.Done()

	ch, _ := s.eventChannel.Load().(chan<- contracts.NoteEvent)
	if ch == nil {
		return
	}
	if len(packet.Data) < 3 {
		s.logger.Warn("Incomplete MIDI packet dropped")
		return
	}

	status := packet.Data[0]
	pitch := packet.Data[1]
	velocity := packet.Data[2]

	var event contracts.NoteEvent
	switch status & 0xF0 {
	case statusNoteOn:
		// A note-on with velocity zero is a note end.
		event = contracts.NoteEvent{Pitch: pitch, Velocity: velocity, On: velocity > 0}
	case statusNoteOff:
		event = contracts.NoteEvent{Pitch: pitch, Velocity: velocity, On: false}
	default:
		return // not note traffic
	}

	select {
	case ch <- event:
	default:
		s.logger.Warn("MIDI event channel is full; event discarded")
	}
}

// Listen starts delivering decoded note events to the channel.
func (s *Source) Listen(events chan<- contracts.NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if events == nil {
		s.logger.Error("Listen called with nil channel")
		return
	}
	s.logger.Info("Starting MIDI event capture")
	s.eventChannel.Store(events)
}

// Close halts capture, disconnects the device, and waits for in-flight
// packet handling to finish. Safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.logger.Info("Stopping MIDI capture")
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.portConn != nil {
			s.portConn.Disconnect()
			s.portConn = nil
		}
		s.eventChannel.Store((chan<- contracts.NoteEvent)(nil))
		s.wg.Wait()
	})
	return nil
}
