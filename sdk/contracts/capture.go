package contracts

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the device belongs.
}

// NoteEvent is a decoded note message from a live MIDI source. A note-on
// with velocity zero is already normalized to On == false.
type NoteEvent struct {
	Pitch    uint8 // MIDI note number (0-127).
	Velocity uint8 // Strength of the note being played (0-127).
	On       bool  // True for note start, false for note end.
}

// MIDISource streams note events from a physical MIDI input, used by the
// live passthrough mode.
type MIDISource interface {
	Devices() ([]DeviceInfo, error) // Lists available MIDI input devices.
	Select(deviceID int) error      // Connects to a device by index.
	Listen(events chan<- NoteEvent) // Starts delivering note events to the channel.
	Close() error                   // Stops capture and releases the device.
}
