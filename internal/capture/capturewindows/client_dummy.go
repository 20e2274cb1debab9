//go:build !windows
// +build !windows

package capturewindows

import (
	"fmt"

	"github.com/leandrodaf/maestro/sdk/contracts"
)

type dummySource struct {
	logger contracts.Logger
}

// NewSource initializes a dummy MIDI source for non-Windows systems.
func NewSource(logger contracts.Logger) (contracts.MIDISource, error) {
	logger.Info("Using dummy MIDI source for non-Windows system")
	return &dummySource{logger: logger}, nil
}

// Devices logs a warning and reports that MIDI input is unavailable.
func (s *dummySource) Devices() ([]contracts.DeviceInfo, error) {
	s.logger.Warn("Devices called on dummy MIDI source")
	return nil, fmt.Errorf("MIDI input is not available on this platform")
}

// Select logs a warning and reports that MIDI input is unavailable.
func (s *dummySource) Select(deviceID int) error {
	s.logger.Warn("Select called on dummy MIDI source")
	return fmt.Errorf("MIDI input is not available on this platform")
}

// Listen logs a warning; no events are ever delivered.
func (s *dummySource) Listen(events chan<- contracts.NoteEvent) {
	s.logger.Warn("Listen called on dummy MIDI source")
}

// Close logs a warning.
func (s *dummySource) Close() error {
	s.logger.Warn("Close called on dummy MIDI source")
	return nil
}
