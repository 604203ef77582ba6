// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"catalognav/cli/internal/assets"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// assetsCmd lists the pipeline stages and the image files they show.
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List pipeline stages, strategy images and the data source",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := assets.New(cfg.Assets, cfg.Source)

		pterm.DefaultSection.Println("Data Source")
		pterm.Println("Raw dataset: " + reg.SourceURL())

		pterm.DefaultSection.Println("Pipeline")
		var items []pterm.BulletListItem
		for _, st := range reg.Stages() {
			items = append(items, pterm.BulletListItem{Level: 0, Text: st.Title})
			if st.Source != "" {
				items = append(items, pterm.BulletListItem{Level: 1, Text: "Source: " + st.Source})
			}
			for _, name := range st.Assets {
				if a, err := reg.Lookup(name); err == nil {
					items = append(items, pterm.BulletListItem{Level: 1, Text: a.Caption})
				}
			}
		}
		if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Images")
		data := pterm.TableData{{"Name", "Caption", "Path", "Status"}}
		for _, name := range []string{assets.Pipeline, assets.Cleaning, assets.Masking, assets.Excel} {
			a, _ := reg.Lookup(name)
			status := "ok"
			if _, err := os.Stat(a.Path); err != nil {
				status = "missing"
			}
			data = append(data, []string{a.Name, a.Caption, a.Path, status})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
}
