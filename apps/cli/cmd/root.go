package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "verity",
	Short: "Assertions for browser-automation test projects.",
	Long: `verity is the assertion and response-validation engine used by
generated browser-automation test projects. The check command exercises
the API assertion engine against a live endpoint from the command line.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
