package player

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/maestro/internal/keyboard/keybdscan"
	"github.com/leandrodaf/maestro/internal/keyboard/keybdvirtual"
	"github.com/leandrodaf/maestro/sdk/contracts"
)

// ErrUnknownProfile is returned when no input backend exists for the
// requested game profile.
var ErrUnknownProfile = errors.New("unknown game profile")

// keyboardInitializers maps game profiles to their input-simulation
// backends. Where Winds Meet ignores virtual-key injection, so its
// profile drives scan codes instead.
var keyboardInitializers = map[contracts.GameProfile]func(contracts.Logger) (contracts.Keyboard, error){
	contracts.Heartopia:      keybdvirtual.NewKeyboard,
	contracts.WhereWindsMeet: keybdscan.NewKeyboard,
}

// newKeyboard initializes the input backend for the profile.
func newKeyboard(profile contracts.GameProfile, logger contracts.Logger) (contracts.Keyboard, error) {
	if initializer, exists := keyboardInitializers[profile]; exists {
		return initializer(logger)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
}
