// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package assets resolves the dashboard's images by logical name and
// describes the pipeline stages they illustrate.
package assets

import (
	"os"
	"path/filepath"

	"catalognav/cli/internal/config"
	apperrors "catalognav/cli/internal/errors"
)

// Logical asset names.
const (
	Pipeline = "pipeline"
	Cleaning = "cleaning"
	Masking  = "masking"
	Excel    = "excel"
)

// Asset is an image file with the caption it is shown under.
type Asset struct {
	Name    string `json:"name"`
	Caption string `json:"caption"`
	Path    string `json:"path"`
}

// Stage is one column of the pipeline block.
type Stage struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Icon   string   `json:"icon,omitempty"`
	Source string   `json:"source,omitempty"`
	Assets []string `json:"assets"`
}

// Registry maps logical names to files.
type Registry struct {
	assets    map[string]Asset
	stages    []Stage
	sourceURL string
}

// New builds the registry from config. Relative file names resolve under cfg.Dir.
func New(cfg config.AssetsConfig, src config.SourceConfig) *Registry {
	path := func(file string) string {
		if filepath.IsAbs(file) || cfg.Dir == "" {
			return file
		}
		return filepath.Join(cfg.Dir, file)
	}
	r := &Registry{
		assets: map[string]Asset{
			Pipeline: {Name: Pipeline, Caption: "End-to-End Data Flow", Path: path(cfg.Pipeline)},
			Cleaning: {Name: Cleaning, Caption: "Cleaning Strategy", Path: path(cfg.Cleaning)},
			Masking:  {Name: Masking, Caption: "Masking Strategy", Path: path(cfg.Masking)},
			Excel:    {Name: Excel, Caption: "Excel", Path: path(cfg.Excel)},
		},
		sourceURL: src.URL,
	}
	r.stages = []Stage{
		{ID: "raw", Title: "Excel (Raw)", Icon: Excel, Source: src.File},
		{ID: "cleaning", Title: "Data Cleaning", Assets: []string{Cleaning}},
		{ID: "test", Title: "hotel_dw_test", Assets: []string{Cleaning, Masking}},
		{ID: "prod", Title: "hotel_dw_prod", Assets: []string{Cleaning, Masking}},
	}
	return r
}

// Lookup returns the asset registered under name.
func (r *Registry) Lookup(name string) (Asset, error) {
	a, ok := r.assets[name]
	if !ok {
		return Asset{}, apperrors.New(apperrors.KeyNotFound, "unknown asset \""+name+"\"")
	}
	return a, nil
}

// Stages returns the pipeline stages in display order.
func (r *Registry) Stages() []Stage {
	out := make([]Stage, len(r.stages))
	copy(out, r.stages)
	return out
}

// Stage returns the stage with id.
func (r *Registry) Stage(id string) (Stage, bool) {
	for _, s := range r.stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// SourceURL is the external page of the raw dataset.
func (r *Registry) SourceURL() string { return r.sourceURL }

// Missing returns the names of assets whose files do not exist.
func (r *Registry) Missing() []string {
	var out []string
	for _, name := range []string{Pipeline, Cleaning, Masking, Excel} {
		if _, err := os.Stat(r.assets[name].Path); err != nil {
			out = append(out, name)
		}
	}
	return out
}
