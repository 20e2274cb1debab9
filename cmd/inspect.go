package cmd

import (
	"fmt"

	"github.com/leandrodaf/maestro/internal/midifile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Prints duration, tempo and note count of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := midifile.ExtractFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("duration: %.2fs\n", song.Duration())
		fmt.Printf("bpm:      %d\n", song.BPM())
		fmt.Printf("notes:    %d\n", song.NoteCount())
		return nil
	},
}
