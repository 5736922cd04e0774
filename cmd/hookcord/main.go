// Package main is the entry point for the hookcord CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hookcord/pkg/config"
	"hookcord/pkg/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hookcord",
	Short: "hookcord - inbound interaction webhook gateway",
	Long: `hookcord receives signed interaction callbacks over HTTP, verifies
their Ed25519 signatures, and dispatches slash commands, context menus
and button clicks to registered handlers. Handler replies go back
through deferred acknowledgements and webhook followups.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetFullVersion())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, created, err := config.InitDefaultConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		if created {
			fmt.Printf("Wrote default configuration to %s\n", path)
		} else {
			fmt.Printf("Configuration already exists at %s\n", path)
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	cobra.OnInitialize(func() {
		if configPath != "" {
			os.Setenv(config.ConfigPathEnv, configPath)
		}
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
