package cmd

import (
	"fmt"
	"time"

	"github.com/leandrodaf/maestro/sdk/contracts"
	"github.com/leandrodaf/maestro/sdk/player"
	"github.com/spf13/cobra"
)

var (
	playGame      string
	playLayout    string
	playSharp     string
	playSpeed     float64
	playTranspose bool
	playCountdown int
)

func init() {
	playCmd.Flags().StringVar(&playGame, "game", "heartopia", "target game: heartopia or wwm")
	playCmd.Flags().StringVar(&playLayout, "layout", "22", "instrument layout: 22, 15-double, 15-triple, drums, xylophone")
	playCmd.Flags().StringVar(&playSharp, "sharp", "skip", "sharp handling on 15-key layouts: skip or snap")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 1.0, "playback speed multiplier (0.25-1.5)")
	playCmd.Flags().BoolVar(&playTranspose, "transpose", false, "octave-shift out-of-range notes into range")
	playCmd.Flags().IntVar(&playCountdown, "countdown", 3, "seconds to wait before playback starts")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Plays a MIDI file into the game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := parseProfile(playGame)
		if err != nil {
			return err
		}
		layout, err := parseLayout(playLayout)
		if err != nil {
			return err
		}
		sharp, err := parseSharp(playSharp)
		if err != nil {
			return err
		}

		p, err := player.New(
			contracts.WithGameProfile(profile),
			contracts.WithKeyLayout(layout),
			contracts.WithSharpPolicy(sharp),
			contracts.WithTranspose(playTranspose),
			contracts.WithSpeed(playSpeed),
		)
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.Load(args[0]); err != nil {
			return err
		}
		fmt.Printf("Loaded %s (%.2fs, %d BPM, %d notes)\n",
			args[0], p.Duration(), p.Song().BPM(), p.Song().NoteCount())

		for i := playCountdown; i > 0; i-- {
			fmt.Printf("Starting in %d...\n", i)
			time.Sleep(time.Second)
		}

		p.Play()
		// Ctrl-C is handled by the player's exit hook, which releases all
		// held keys before the process terminates.
		for p.State() == contracts.Playing {
			time.Sleep(200 * time.Millisecond)
		}
		if lastErr := p.LastError(); lastErr != "" {
			fmt.Println(lastErr)
		}
		return nil
	},
}
