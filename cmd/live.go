package cmd

import (
	"fmt"

	"github.com/leandrodaf/maestro/sdk/capture"
	"github.com/leandrodaf/maestro/sdk/contracts"
	"github.com/leandrodaf/maestro/sdk/player"
	"github.com/spf13/cobra"
)

var (
	liveGame      string
	liveLayout    string
	liveSharp     string
	liveTranspose bool
	liveDevice    int
	liveList      bool
)

func init() {
	liveCmd.Flags().StringVar(&liveGame, "game", "heartopia", "target game: heartopia or wwm")
	liveCmd.Flags().StringVar(&liveLayout, "layout", "22", "instrument layout: 22, 15-double, 15-triple, drums, xylophone")
	liveCmd.Flags().StringVar(&liveSharp, "sharp", "skip", "sharp handling on 15-key layouts: skip or snap")
	liveCmd.Flags().BoolVar(&liveTranspose, "transpose", false, "octave-shift out-of-range notes into range")
	liveCmd.Flags().IntVar(&liveDevice, "device", 0, "MIDI input device index")
	liveCmd.Flags().BoolVar(&liveList, "list", false, "list MIDI input devices and exit")
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Plays a connected MIDI keyboard into the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := capture.NewMIDISource(nil)
		if err != nil {
			return err
		}
		defer src.Close()

		if liveList {
			devices, err := src.Devices()
			if err != nil {
				return err
			}
			for i, d := range devices {
				fmt.Printf("%d: %s (%s)\n", i, d.Name, d.Manufacturer)
			}
			return nil
		}

		profile, err := parseProfile(liveGame)
		if err != nil {
			return err
		}
		layout, err := parseLayout(liveLayout)
		if err != nil {
			return err
		}
		sharp, err := parseSharp(liveSharp)
		if err != nil {
			return err
		}

		p, err := player.New(
			contracts.WithGameProfile(profile),
			contracts.WithKeyLayout(layout),
			contracts.WithSharpPolicy(sharp),
			contracts.WithTranspose(liveTranspose),
		)
		if err != nil {
			return err
		}
		defer p.Close()

		if err := src.Select(liveDevice); err != nil {
			return err
		}

		events := make(chan contracts.NoteEvent, 100)
		src.Listen(events)
		fmt.Println("Forwarding MIDI input... Press Ctrl+C to exit.")

		// The player's exit hook releases held keys on Ctrl-C.
		for event := range events {
			if event.On {
				p.PressPitch(int(event.Pitch))
			} else {
				p.ReleasePitch(int(event.Pitch))
			}
		}
		return nil
	},
}
