// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"catalognav/cli/internal/config"
	"catalognav/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	// An existing file may be invalid, so init does not load it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with passwords masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := yaml.Marshal(maskedConfig(cfg))
		if err != nil {
			return err
		}
		path, _ := resolvedConfigPath()
		pterm.Info.Printfln("Config file: %s", path)
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

// maskedConfig returns a copy of c with role passwords and DSN passwords hidden.
func maskedConfig(c config.Config) config.Config {
	c.Roles = append([]config.Role(nil), c.Roles...)
	for i := range c.Roles {
		if c.Roles[i].Password != "" {
			c.Roles[i].Password = "***"
		}
	}
	c.Environments = append([]config.Environment(nil), c.Environments...)
	for i := range c.Environments {
		c.Environments[i].DSN = logging.Mask(c.Environments[i].DSN)
	}
	return c
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
