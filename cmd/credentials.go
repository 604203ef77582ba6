// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"catalognav/cli/internal/keychain"
	"catalognav/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var credRole string

// credentialsCmd groups the keychain password commands.
var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage role passwords in the OS keychain",
	Long: `Role passwords can live in the OS keychain instead of the config file. Stored
passwords take precedence over config passwords when keychain.enabled is true.`,
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a role's password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(credRole); err != nil {
			return err
		}
		if !terminal.IsInteractive() {
			return errors.New("credentials set needs a terminal to read the password")
		}
		pw, err := terminal.ReadSecret(os.Stdout, fmt.Sprintf("Password for %s: ", credRole))
		if err != nil {
			return err
		}
		if strings.TrimSpace(pw) == "" {
			return errors.New("empty password; use 'catalognav credentials clear' to remove one")
		}

		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system")
			return err
		}
		if err := km.SaveRolePassword(credRole, pw); err != nil {
			return err
		}
		pterm.Success.Printfln("Password stored for %s", credRole)
		if !cfg.Keychain.Enabled {
			pterm.Warning.Println("keychain.enabled is false in the config; the stored password is not used yet")
		}
		return nil
	},
}

var credentialsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove a role's stored password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRole(credRole); err != nil {
			return err
		}
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system")
			return err
		}
		if err := km.ClearRolePassword(credRole); err != nil {
			return err
		}
		pterm.Success.Printfln("Password cleared for %s", credRole)
		return nil
	},
}

var credentialsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where each role's password comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, kerr := keychain.GetManager()
		data := pterm.TableData{{"Role", "Username", "Config", "Keychain"}}
		for _, r := range cfg.Roles {
			fromConfig := "no password"
			if r.Password != "" {
				fromConfig = "set"
			}
			fromKeychain := "unavailable"
			if kerr == nil {
				fromKeychain = "not stored"
				if _, found, err := km.RolePassword(r.Name); err != nil {
					fromKeychain = "error"
				} else if found {
					fromKeychain = "stored"
				}
			}
			user := r.Username
			if user == "" {
				user = r.Name
			}
			data = append(data, []string{r.Name, user, fromConfig, fromKeychain})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
		state := "disabled"
		if cfg.Keychain.Enabled {
			state = "enabled"
		}
		pterm.Info.Printfln("Keychain lookup is %s", state)
		return nil
	},
}

func requireRole(role string) error {
	if role == "" {
		return errors.New("--role is required")
	}
	for _, r := range cfg.Roles {
		if r.Name == role {
			return nil
		}
	}
	return fmt.Errorf("unknown role %q (known: %s)", role, strings.Join(cfg.RoleNames(), ", "))
}

func init() {
	credentialsCmd.PersistentFlags().StringVar(&credRole, "role", "", "Role name")
	credentialsCmd.AddCommand(credentialsSetCmd, credentialsClearCmd, credentialsStatusCmd)
	rootCmd.AddCommand(credentialsCmd)
}
