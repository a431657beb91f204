package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "gnssfixd",
		Short: "NMEA-0183 GNSS fix daemon",
		Long: `gnssfixd reads NMEA-0183 sentences from a serial GNSS receiver or a
log file, merges them into a live fix, and exposes the fix over HTTP,
UDP broadcast and MQTT.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(distanceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
