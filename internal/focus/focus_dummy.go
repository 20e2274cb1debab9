//go:build !windows
// +build !windows

package focus

import "github.com/leandrodaf/maestro/sdk/contracts"

// Checker is the non-Windows variant; no window introspection is
// available, so the game is always considered active.
type Checker struct{}

// New creates the platform focus checker.
func New() contracts.FocusChecker {
	return &Checker{}
}

// GameActive always reports true on platforms without focus detection.
func (c *Checker) GameActive(titleFragment string) bool {
	return true
}
