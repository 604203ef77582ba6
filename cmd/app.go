// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/pterm/pterm"

	"catalognav/cli/internal/assets"
	"catalognav/cli/internal/config"
	"catalognav/cli/internal/credentials"
	"catalognav/cli/internal/dsn"
	"catalognav/cli/internal/explorer"
	"catalognav/cli/internal/keychain"
	"catalognav/cli/internal/logging"
	"catalognav/cli/internal/pii"
	"catalognav/cli/internal/report"
)

// app is the wired object graph shared by serve, explore and dbinfo.
type app struct {
	cfg       config.Config
	directory *credentials.Directory
	builder   *dsn.Builder
	explorer  *explorer.Service
	assets    *assets.Registry
	registry  *prometheus.Registry
}

// newApp wires the core from c. When the keychain is enabled but
// unavailable, config passwords are used and a warning is logged.
func newApp(c config.Config) *app {
	dir := credentials.NewDirectory(c.Roles)
	if c.Keychain.Enabled {
		km, err := keychain.GetManager()
		if err != nil {
			logging.Logger().Warn("keychain unavailable, using config passwords", logging.Logger().Args("error", err))
		} else {
			dir = dir.WithSecrets(km)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	builder := dsn.NewBuilder(c.Database, c.Environments, dir)
	svc := explorer.New(
		builder,
		pii.NewClassifier(c.PII.Columns),
		report.New(c.Aggregate.Table, c.Aggregate.Column),
		explorer.NewMetrics(reg),
	)
	pterm.Debug.Printfln("app: %d environments, %d roles, driver %s", len(c.Environments), len(c.Roles), c.Database.Driver)

	return &app{
		cfg:       c,
		directory: dir,
		builder:   builder,
		explorer:  svc,
		assets:    assets.New(c.Assets, c.Source),
		registry:  reg,
	}
}
