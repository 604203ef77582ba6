// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"catalognav/cli/internal/explorer"
	"catalognav/cli/internal/report"
)

// piiStyle marks rows holding personally identifiable columns.
var piiStyle = pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack)

// RenderView writes an explore result: the status line, role access info,
// the table list and one column table per database table.
func RenderView(w io.Writer, v *explorer.View) error {
	if v.Failed() {
		fmt.Fprintln(w, pterm.Error.Sprint(v.Error))
		if v.Hint != "" {
			fmt.Fprintln(w, pterm.Info.Sprint(v.Hint))
		}
		return nil
	}

	fmt.Fprintln(w, pterm.Success.Sprint(v.ConnectedMessage()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Role Access Info"))
	fmt.Fprintln(w, "User: "+pterm.Bold.Sprint(v.Role))
	fmt.Fprintln(w, "Connection: "+v.Connection)
	if v.NoAuth {
		fmt.Fprintln(w, pterm.Warning.Sprint(v.AccessMessage()))
	}
	fmt.Fprintln(w, "Accessible Tables:")

	items := make([]pterm.BulletListItem, 0, len(v.Tables))
	for _, t := range v.Tables {
		items = append(items, pterm.BulletListItem{Level: 0, Text: t.Name})
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		list, err := pterm.DefaultBulletList.WithItems(items).Srender()
		if err != nil {
			return err
		}
		fmt.Fprint(w, list)
	}

	for _, t := range v.Tables {
		if err := RenderTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable writes one table's columns with PII rows highlighted, followed
// by its breakdown chart or warning.
func RenderTable(w io.Writer, t explorer.TableView) error {
	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Table: "+t.Name))

	data := pterm.TableData{{"Column", "Type", "Nullable", "Primary Key", "PII"}}
	for _, c := range t.Columns {
		row := []string{c.Name, c.Type, strconv.FormatBool(c.Nullable), strconv.FormatBool(c.PrimaryKey), strconv.FormatBool(c.Sensitive)}
		if c.Sensitive {
			for i := range row {
				row[i] = piiStyle.Sprint(row[i])
			}
		}
		data = append(data, row)
	}
	tbl, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, tbl)

	switch {
	case t.Warning != "":
		fmt.Fprintln(w, pterm.Warning.Sprint(t.Warning))
	case t.Chart != nil:
		return RenderChart(w, t.Chart)
	}
	return nil
}

// RenderChart writes the classification breakdown as horizontal bars.
func RenderChart(w io.Writer, counts []report.ClassificationCount) error {
	fmt.Fprintln(w, pterm.DefaultSection.WithLevel(2).Sprint("Classification Distribution"))
	if len(counts) == 0 {
		fmt.Fprintln(w, "  (no rows)")
		return nil
	}
	bars := make(pterm.Bars, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, pterm.Bar{Label: c.Label, Value: int(c.Count)})
	}
	chart, err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, chart)
	return nil
}
