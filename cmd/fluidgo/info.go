package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fluidgo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved engine and its key settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !fluidgo.Ready() {
			fmt.Fprintf(out, "engine: not available (%v)\n", nativeLoadErr())
			return nil
		}

		synth := fluidgo.New()
		if err := synth.Open(false); err != nil {
			return err
		}
		defer synth.Close()

		fmt.Fprintf(out, "engine version: %s\n", synth.EngineVersion())
		fmt.Fprintf(out, "synth.gain:        %v\n", synth.SettingNum("synth.gain"))
		fmt.Fprintf(out, "synth.device-id:   %d\n", synth.SettingInt("synth.device-id"))
		fmt.Fprintf(out, "synth.polyphony:   %d\n", synth.SettingInt("synth.polyphony"))
		fmt.Fprintf(out, "synth.sample-rate: %v\n", synth.SettingNum("synth.sample-rate"))
		fmt.Fprintf(out, "audio.driver:      %s\n", synth.SettingString("audio.driver"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
