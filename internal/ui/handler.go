// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package ui serves the web dashboard: the pipeline overview, the strategy
// images and the database explorer.
package ui

import (
	"context"
	"encoding/json"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"catalognav/cli/internal/assets"
	"catalognav/cli/internal/config"
	"catalognav/cli/internal/explorer"
)

// Explorer runs one explore action.
type Explorer interface {
	Explore(ctx context.Context, req explorer.Request) *explorer.View
}

// Handler holds what the dashboard pages read. It keeps no per-user state.
type Handler struct {
	Explorer     Explorer
	Assets       *assets.Registry
	Environments []config.Environment
	Roles        []string
}

// NewHandler creates a Handler.
func NewHandler(exp Explorer, reg *assets.Registry, envs []config.Environment, roles []string) *Handler {
	return &Handler{
		Explorer:     exp,
		Assets:       reg,
		Environments: envs,
		Roles:        roles,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
