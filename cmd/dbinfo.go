// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"catalognav/cli/internal/dsn"
	"catalognav/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	dbinfoEnv  string
	dbinfoRole string
	dbinfoDSN  string
)

// dbinfoCmd displays the connection an explore action would use.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the connection for an environment and role",
	Long: `The dbinfo command shows the connection parameters built for an environment and a
role without connecting. The password is never printed; a role with no password is shown
as such.

With --dsn it parses and normalizes a connection string instead, which helps when writing
an environment's dsn override in the config file.`,
	Example: `  catalognav dbinfo --env hotel_dw_prod --role dba_1
  catalognav dbinfo --dsn 'mysql://engineer_1:pw@db:3306/hotel_dw'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbinfoDSN != "" {
			return showDSN(dbinfoDSN)
		}
		if dbinfoEnv == "" || dbinfoRole == "" {
			return fmt.Errorf("--env and --role are required (or use --dsn)")
		}

		a := newApp(cfg)
		d, err := a.builder.Build(dbinfoEnv, dbinfoRole)
		if err != nil {
			return err
		}

		auth := "password configured"
		if d.NoAuth() {
			auth = "no password configured"
		}
		schema := d.Schema
		if schema == "" {
			schema = "(driver default)"
		}
		details := strings.Join([]string{
			"Connection: " + d.Redacted(),
			"Driver:     " + string(d.Driver),
			"Database:   " + d.Database,
			"User:       " + d.Username,
			"Auth:       " + auth,
			"Schema:     " + schema,
		}, "\n")
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(dbinfoEnv + " as " + dbinfoRole)).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println(details)
		return nil
	},
}

func showDSN(raw string) error {
	info, err := dsn.ParseInfo(raw)
	if err != nil {
		return err
	}
	normalized, err := dsn.Parse(raw)
	if err != nil {
		return err
	}
	details := strings.Join([]string{
		"Type:       " + string(info.Type),
		"Host:       " + info.Host,
		"Port:       " + info.Port,
		"Database:   " + info.Database,
		"User:       " + info.User,
		"Normalized: " + logging.Mask(normalized),
	}, "\n")
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Connection String")).
		WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
		Println(details)
	return nil
}

func init() {
	dbinfoCmd.Flags().StringVar(&dbinfoEnv, "env", "", "Environment name")
	dbinfoCmd.Flags().StringVar(&dbinfoRole, "role", "", "Role name")
	dbinfoCmd.Flags().StringVar(&dbinfoDSN, "dsn", "", "Parse this connection string instead")
	rootCmd.AddCommand(dbinfoCmd)
}
