package cmd

import (
	"fmt"
	"strings"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Plays MIDI files on in-game instruments via simulated key presses",
	Long: `Maestro translates MIDI note events into simulated key presses on a
game's virtual instrument. It supports the Heartopia instrument layouts
and the Where Winds Meet piano.`,
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// parseProfile maps a --game flag value to a profile.
func parseProfile(s string) (contracts.GameProfile, error) {
	switch strings.ToLower(s) {
	case "heartopia":
		return contracts.Heartopia, nil
	case "wwm", "where-winds-meet":
		return contracts.WhereWindsMeet, nil
	default:
		return 0, fmt.Errorf("unknown game %q (want heartopia or wwm)", s)
	}
}

// parseLayout maps a --layout flag value to a layout.
func parseLayout(s string) (contracts.KeyLayout, error) {
	switch strings.ToLower(s) {
	case "22", "22-key", "full":
		return contracts.Keys22, nil
	case "15-double":
		return contracts.Keys15Double, nil
	case "15-triple":
		return contracts.Keys15Triple, nil
	case "drums":
		return contracts.Drums, nil
	case "xylophone":
		return contracts.Xylophone, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (want 22, 15-double, 15-triple, drums or xylophone)", s)
	}
}

// parseSharp maps a --sharp flag value to a policy.
func parseSharp(s string) (contracts.SharpPolicy, error) {
	switch strings.ToLower(s) {
	case "skip":
		return contracts.SharpSkip, nil
	case "snap":
		return contracts.SharpSnap, nil
	default:
		return 0, fmt.Errorf("unknown sharp policy %q (want skip or snap)", s)
	}
}
