// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalognav/cli/internal/logging"
	"catalognav/cli/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var serveListen string

// serveCmd runs the web dashboard until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web dashboard",
	Long: `The serve command starts the web dashboard: the data source link, the pipeline
diagram with its cleaning and masking strategies, and the database explorer. Each
Connect opens one connection for that request and closes it before the page returns.

Also serves /api/explore (JSON), /metrics (Prometheus) and /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		addr := cfg.Listen
		if serveListen != "" {
			addr = serveListen
		}

		if missing := a.assets.Missing(); len(missing) > 0 {
			logging.Logger().Warn("image assets not found", logging.Logger().Args("assets", missing, "dir", cfg.Assets.Dir))
		}

		h := ui.NewHandler(a.explorer, a.assets, cfg.Environments, a.directory.Roles())
		srv := &http.Server{
			Addr:              addr,
			Handler:           ui.NewRouter(h, a.registry),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			errc <- srv.ListenAndServe()
		}()
		pterm.Success.Printfln("Dashboard listening on http://%s", addr)

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		pterm.Info.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config listen)")
	rootCmd.AddCommand(serveCmd)
}
