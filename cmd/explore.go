// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"catalognav/cli/internal/explorer"
	"catalognav/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	exploreEnv  string
	exploreRole string
	exploreJSON bool
)

// exploreCmd runs one explore action and prints the result.
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore an environment's tables as a role",
	Long: `The explore command connects to one environment as one role, lists every table with
its columns and flags personally identifiable columns. For dim_customer it also shows the
classification breakdown.

Without --env or --role it asks interactively. Use --json for the raw result.`,
	Example: `  catalognav explore --env hotel_dw_test --role analyst_1
  catalognav explore --env hotel_dw_prod --role dba_1 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		interactive := terminal.IsInteractive()

		env, err := chooseOption(exploreEnv, "env", "Choose Environment", a.builder.Environments(), interactive)
		if err != nil {
			return err
		}
		role, err := chooseOption(exploreRole, "role", "Login as User", a.directory.Roles(), interactive)
		if err != nil {
			return err
		}

		stop := func() {}
		if interactive && !exploreJSON {
			stop = startInlineSpinner(os.Stdout, "connecting to "+env+" as "+role, spinnerFrames, 100*time.Millisecond)
		}
		v := a.explorer.Explore(cmd.Context(), explorer.Request{Environment: env, Role: role})
		stop()

		if exploreJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return err
			}
		} else if err := terminal.RenderView(os.Stdout, v); err != nil {
			return err
		}
		if v.Failed() {
			return errReported
		}
		return nil
	},
}

// chooseOption returns value when set, otherwise asks with an interactive
// select. Without a terminal the flag is required.
func chooseOption(value, flag, title string, options []string, interactive bool) (string, error) {
	if value != "" {
		return value, nil
	}
	if !interactive {
		return "", errors.New("--" + flag + " is required when not running in a terminal")
	}
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(title).
		Show()
}

func init() {
	exploreCmd.Flags().StringVar(&exploreEnv, "env", "", "Environment to connect to (e.g. hotel_dw_test)")
	exploreCmd.Flags().StringVar(&exploreRole, "role", "", "Role to log in as (e.g. analyst_1)")
	exploreCmd.Flags().BoolVar(&exploreJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(exploreCmd)
}
