// Package xdg resolves XDG Base Directory paths for catalognav.
// Only the configuration directory is used: the navigator keeps no state
// between actions, so there is nothing to put under XDG_STATE_HOME.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "catalognav"

// ConfigDir returns the XDG config directory for catalognav without creating it.
// It falls back to ~/.config/catalognav when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// EnsureConfigDir returns ConfigDir after creating it with private permissions (0700).
func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
