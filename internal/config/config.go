// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores catalognav configuration in the XDG config dir.
// The file is YAML. A missing file yields the built-in defaults, which describe the
// hotel booking warehouse: three environments on localhost:5431, four roles with no
// password, and the fixed PII column list. Real passwords belong in the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "catalognav/cli/internal/errors"
	"catalognav/cli/internal/xdg"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the XDG config directory.
const FileName = "config.yaml"

// Config holds every setting the navigator reads at startup.
type Config struct {
	LogLevel     string          `yaml:"log_level" validate:"oneof=trace debug info warn warning error off disabled"`
	Listen       string          `yaml:"listen" validate:"required"`
	Database     DatabaseConfig  `yaml:"database"`
	Environments []Environment   `yaml:"environments" validate:"min=1,unique=Name,dive"`
	Roles        []Role          `yaml:"roles" validate:"min=1,unique=Name,dive"`
	PII          PIIConfig       `yaml:"pii"`
	Aggregate    AggregateConfig `yaml:"aggregate"`
	Assets       AssetsConfig    `yaml:"assets"`
	Source       SourceConfig    `yaml:"source"`
	Keychain     KeychainConfig  `yaml:"keychain"`
}

// DatabaseConfig holds the fixed connection settings shared by all environments.
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=postgres mysql sqlite"`
	Host   string `yaml:"host" validate:"required_unless=Driver sqlite"`
	Port   int    `yaml:"port" validate:"min=0,max=65535"`
	// Schema whose tables are listed; empty selects public, DATABASE() or main.
	Schema string            `yaml:"schema,omitempty"`
	Params map[string]string `yaml:"params,omitempty"`
}

// Environment names a target database. DSN, when set, replaces the built connection.
type Environment struct {
	Name  string `yaml:"name" validate:"required"`
	Label string `yaml:"label,omitempty"`
	DSN   string `yaml:"dsn,omitempty"`
}

// Role is a selectable credential identity.
type Role struct {
	Name     string `yaml:"name" validate:"required"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// PIIConfig lists the column names treated as personally identifiable.
type PIIConfig struct {
	Columns []string `yaml:"columns" validate:"dive,required"`
}

// AggregateConfig names the table and column of the classification breakdown.
type AggregateConfig struct {
	Table  string `yaml:"table" validate:"required"`
	Column string `yaml:"column" validate:"required"`
}

// AssetsConfig maps logical image names to files under Dir.
type AssetsConfig struct {
	Dir      string `yaml:"dir"`
	Pipeline string `yaml:"pipeline" validate:"required"`
	Cleaning string `yaml:"cleaning" validate:"required"`
	Masking  string `yaml:"masking" validate:"required"`
	Excel    string `yaml:"excel" validate:"required"`
}

// SourceConfig describes the raw dataset the pipeline starts from.
type SourceConfig struct {
	URL  string `yaml:"url" validate:"omitempty,url"`
	File string `yaml:"file"`
}

// KeychainConfig toggles the OS keychain password overlay.
type KeychainConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	roles := []Role{}
	for _, name := range []string{"dba_1", "developer_1", "engineer_1", "analyst_1"} {
		roles = append(roles, Role{Name: name, Username: name, Password: ""})
	}
	return Config{
		LogLevel: "info",
		Listen:   "127.0.0.1:8501",
		Database: DatabaseConfig{
			Driver: "postgres",
			Host:   "localhost",
			Port:   5431,
		},
		Environments: []Environment{
			{Name: "hotel_dw", Label: "Development"},
			{Name: "hotel_dw_test", Label: "Test"},
			{Name: "hotel_dw_prod", Label: "Production"},
		},
		Roles: roles,
		PII: PIIConfig{Columns: []string{
			"name", "email", "phone_number", "credit_card", "arrival_date", "reservation_status_date",
		}},
		Aggregate: AggregateConfig{Table: "dim_customer", Column: "classification"},
		Assets: AssetsConfig{
			Dir:      "images",
			Pipeline: "data_pipeline_diagram.png",
			Cleaning: "cleaning_strategy.png",
			Masking:  "masking_strategy.png",
			Excel:    "excel_icon.png",
		},
		Source: SourceConfig{
			URL:  "https://www.kaggle.com/datasets/saadharoon27/hotel-booking-dataset/data",
			File: "hotel_booking.csv",
		},
		Keychain: KeychainConfig{Enabled: false},
	}
}

// DefaultPath returns the path to the config file.
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads configuration from path (DefaultPath when empty); a missing file
// returns defaults. Environment overrides are applied last, then the result is validated.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return c, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, apperrors.Wrap(apperrors.ConfigInvalid, "read "+path, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, apperrors.Wrap(apperrors.ConfigInvalid, "parse "+path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes configuration with 0600 permissions, creating the parent directory.
func Save(path string, c Config) error {
	if path == "" {
		dir, err := xdg.EnsureConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, FileName)
	} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and reports the first failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s fails %q (%s)", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return apperrors.New(apperrors.ConfigInvalid, msg)
	}
	return apperrors.Wrap(apperrors.ConfigInvalid, "validate", err)
}

// applyEnv applies CATALOGNAV_* overrides.
func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CATALOGNAV_DB_HOST")); v != "" {
		c.Database.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("CATALOGNAV_DB_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ConfigInvalid, "CATALOGNAV_DB_PORT", err)
		}
		c.Database.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("CATALOGNAV_LISTEN")); v != "" {
		c.Listen = v
	}
	return nil
}

// EnvironmentNames returns environment identifiers in configured order.
func (c Config) EnvironmentNames() []string {
	out := make([]string, 0, len(c.Environments))
	for _, e := range c.Environments {
		out = append(out, e.Name)
	}
	return out
}

// RoleNames returns role identifiers in configured order.
func (c Config) RoleNames() []string {
	out := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		out = append(out, r.Name)
	}
	return out
}
