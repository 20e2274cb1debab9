// Package capture exposes live MIDI input sources for the passthrough
// mode, selecting the platform backend automatically.
package capture

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/maestro/internal/capture/capturedarwin"
	"github.com/leandrodaf/maestro/internal/capture/capturewindows"
	"github.com/leandrodaf/maestro/internal/logger"
	"github.com/leandrodaf/maestro/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI
// input backend.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sourceInitializers maps OS names to MIDI source initializers.
var sourceInitializers = map[string]func(contracts.Logger) (contracts.MIDISource, error){
	"darwin":  capturedarwin.NewSource,
	"windows": capturewindows.NewSource,
}

// NewMIDISource initializes a MIDI input source for the current operating
// system. A nil logger falls back to the default zap logger.
func NewMIDISource(log contracts.Logger) (contracts.MIDISource, error) {
	if log == nil {
		log = logger.NewZapLogger()
	}
	if initializer, exists := sourceInitializers[runtime.GOOS]; exists {
		return initializer(log)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
