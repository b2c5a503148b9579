package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fluidgo/native"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fluidgo",
	Short: "Drive the native synthesis engine",
	Long: `fluidgo drives the native synthesis engine: render MIDI files to WAV
offline, play live MIDI input, and inspect the resolved engine.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		// The resolver picks the override up from the environment, so
		// flag and config file both funnel through it.
		if lib := viper.GetString("library"); lib != "" {
			os.Setenv(native.EnvLibrary, lib)
		}
	},
}

// nativeLoadErr reports why the engine library did not resolve.
func nativeLoadErr() error {
	return native.LoadErr()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("library", "", "engine library path or bare name (overrides the search)")
	_ = viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))

	viper.SetEnvPrefix("fluidgo")
	viper.AutomaticEnv()
}
