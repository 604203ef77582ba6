// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for catalognav, the data
// catalog navigator of the hotel booking warehouse. It serves the web
// dashboard, explores environments from the terminal and manages the
// configuration and role passwords.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"catalognav/cli/internal/config"
	"catalognav/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	configPath  string
	verbose     bool

	// cfg is loaded once per invocation by PersistentPreRunE.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "catalognav",
	Short: "Data catalog navigator for the hotel booking warehouse",
	Long: `catalognav shows the hotel booking data pipeline and explores the metadata of its
warehouse databases. Pick an environment and a role, and it lists every table with its
columns, flags personally identifiable columns and charts the customer classification mix.

Run 'catalognav serve' for the web dashboard or 'catalognav explore' in a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			c.LogLevel = "debug"
		}
		logging.Setup(c.LogLevel)
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("catalognav %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// errReported marks a failure the command already showed to the user.
var errReported = errors.New("reported")

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.PresentError("Error", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/catalognav/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
