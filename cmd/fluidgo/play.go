package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rakyll/portmidi"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"

	"fluidgo"
)

var (
	playSoundFont string
	playDevice    int
	playList      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play live MIDI input on the engine",
	Long: `play opens the engine with an audio driver and streams events from a
MIDI input device to it until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := portmidi.Initialize(); err != nil {
			return fmt.Errorf("initializing MIDI input: %w", err)
		}
		defer portmidi.Terminate()

		if playList {
			return listInputDevices(cmd)
		}

		if !fluidgo.Ready() {
			return fmt.Errorf("no synthesis engine available: %w", nativeLoadErr())
		}

		id := portmidi.DeviceID(playDevice)
		if playDevice < 0 {
			id = portmidi.DefaultInputDeviceID()
		}
		in, err := portmidi.NewInputStream(id, 1024)
		if err != nil {
			return fmt.Errorf("opening MIDI input %d: %w", id, err)
		}
		defer in.Close()

		synth := fluidgo.New()
		if err := synth.Open(true); err != nil {
			return err
		}
		defer synth.Close()

		if playSoundFont != "" {
			if _, err := synth.LoadSoundFont(playSoundFont); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "playing from device %d, ctrl-c to stop\n", id)
		events := in.Listen()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				if len(ev.SysEx) > 0 {
					synth.SendSysEx(ev.SysEx)
					continue
				}
				synth.Send(midi.Message{byte(ev.Status), byte(ev.Data1), byte(ev.Data2)})
			}
		}
	},
}

func listInputDevices(cmd *cobra.Command) error {
	n := portmidi.CountDevices()
	for i := 0; i < n; i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil || !info.IsInputAvailable {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%s)\n", i, info.Name, info.Interface)
	}
	return nil
}

func init() {
	playCmd.Flags().StringVarP(&playSoundFont, "soundfont", "s", "", "soundfont file to load")
	playCmd.Flags().IntVarP(&playDevice, "device", "d", -1, "MIDI input device id (default: system default)")
	playCmd.Flags().BoolVarP(&playList, "list", "l", false, "list MIDI input devices and exit")
	rootCmd.AddCommand(playCmd)
}
