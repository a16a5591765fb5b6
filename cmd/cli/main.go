// Package main provides the command line front end: one-shot routing and
// answers, an interactive chat loop, the built-in tool server over stdio and
// the Google Calendar authorization flow.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "cli",
		Short:         "Voice assistant command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: search ./config, ., /etc/app/)")

	rootCmd.AddCommand(
		routeCmd(&configPath),
		askCmd(&configPath),
		chatCmd(&configPath),
		toolsCmd(&configPath),
		rememberCmd(&configPath),
		toolServerCmd(&configPath),
		calendarAuthCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
