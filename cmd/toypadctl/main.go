// Command toypadctl is a small CLI around the toypad engine: attach to a
// device, watch tag events, drive lighting, read tag pages, and derive Key
// A sector keys offline.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/padbridge/toypad"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "toypadctl",
	Short: "Drive a USB toy pad peripheral from the command line",
	Long: `toypadctl attaches to a toy pad's USB HID interface, tracks tag
presence across its three lighting zones, drives solid/fade/flash
lighting, and reads tag page data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(lightCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(keyaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildEngine loads config and constructs a real, unstarted Engine.
func buildEngine() (*toypad.Engine, error) {
	cfg, err := toypad.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	return toypad.New(toypad.Options{
		Logger:         cfg.Logger(),
		RequestTimeout: cfg.RequestTimeout,
	}), nil
}
