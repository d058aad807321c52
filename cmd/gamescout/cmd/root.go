// Package cmd implements the CLI commands for the gamescout server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gamescout",
	Short: "Game metadata and pricing aggregation server",
	Long: "An API-first service that merges game catalog metadata with " +
		"storefront pricing data behind a cached, partial-failure-tolerant API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
