//go:build !windows
// +build !windows

package keybdvirtual

import (
	"errors"

	"github.com/leandrodaf/maestro/sdk/contracts"
)

// ErrUnsupportedPlatform is returned when key simulation is attempted on a
// platform without an input backend.
var ErrUnsupportedPlatform = errors.New("keyboard simulation is not available on this platform")

type dummyKeyboard struct {
	logger contracts.Logger
}

// NewKeyboard initializes a dummy keyboard for non-Windows systems.
func NewKeyboard(logger contracts.Logger) (contracts.Keyboard, error) {
	logger.Warn("Using dummy keyboard backend for non-Windows system")
	return &dummyKeyboard{logger: logger}, nil
}

// Press logs a warning and returns ErrUnsupportedPlatform.
func (k *dummyKeyboard) Press(key string) error {
	k.logger.Warn("Press called on dummy keyboard backend", k.logger.Field().String("key", key))
	return ErrUnsupportedPlatform
}

// Release logs a warning and returns ErrUnsupportedPlatform.
func (k *dummyKeyboard) Release(key string) error {
	k.logger.Warn("Release called on dummy keyboard backend", k.logger.Field().String("key", key))
	return ErrUnsupportedPlatform
}
