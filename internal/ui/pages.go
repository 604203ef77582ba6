// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"fmt"
	"strconv"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"catalognav/cli/internal/assets"
	"catalognav/cli/internal/explorer"
	"catalognav/cli/internal/report"
)

// dashboard is the state of one page render.
type dashboard struct {
	env  string
	role string
	show showParam
	view *explorer.View
}

func (h *Handler) page(d dashboard) gomponents.Node {
	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text("Data Catalog Navigator")),
			html.StyleEl(gomponents.Raw(stylesheet)),
		),
		html.Body(
			h.sidebar(d),
			html.Main(
				html.H1(gomponents.Text("Hotel Booking Data Catalog")),
				h.sourceSection(),
				h.stagesSection(d.show),
				html.Hr(),
				html.H2(gomponents.Text("Explore Database Metadata")),
				explorerSection(d.view),
			),
		),
	))
}

func (h *Handler) sidebar(d dashboard) gomponents.Node {
	envOptions := make([]gomponents.Node, 0, len(h.Environments))
	for _, e := range h.Environments {
		label := e.Name
		if e.Label != "" {
			label = fmt.Sprintf("%s (%s)", e.Name, e.Label)
		}
		envOptions = append(envOptions, html.Option(html.Value(e.Name), gomponents.If(e.Name == d.env, html.Selected()), gomponents.Text(label)))
	}
	roleOptions := make([]gomponents.Node, 0, len(h.Roles))
	for _, role := range h.Roles {
		roleOptions = append(roleOptions, html.Option(html.Value(role), gomponents.If(role == d.role, html.Selected()), gomponents.Text(role)))
	}

	return html.Aside(
		html.H2(gomponents.Text("DB Connection Settings")),
		html.Form(
			html.Method("post"),
			html.Action("/explore"),
			html.Label(html.For("env"), gomponents.Text("Choose Environment")),
			html.Select(html.ID("env"), html.Name("env"), gomponents.Group(envOptions)),
			html.Label(html.For("role"), gomponents.Text("Login as User")),
			html.Select(html.ID("role"), html.Name("role"), gomponents.Group(roleOptions)),
			html.Button(html.Type("submit"), gomponents.Text("Connect to Database")),
		),
	)
}

func (h *Handler) sourceSection() gomponents.Node {
	pipeline, _ := h.Assets.Lookup(assets.Pipeline)
	return html.Section(
		html.H2(gomponents.Text("Data Source")),
		externalLink(h.Assets.SourceURL(), "View Raw Excel (Kaggle)"),
		figure(pipeline),
	)
}

func (h *Handler) stagesSection(show showParam) gomponents.Node {
	cols := []gomponents.Node{}
	for _, st := range h.Assets.Stages() {
		body := []gomponents.Node{html.Class("stage"), html.H4(gomponents.Text(st.Title))}
		if st.Icon != "" {
			icon, _ := h.Assets.Lookup(st.Icon)
			body = append(body, html.Img(html.Src("/assets/"+icon.Name), html.Alt(icon.Caption), html.Width("60")))
		}
		if st.Source != "" {
			body = append(body, html.P(gomponents.Text("Source: "+st.Source)), externalLink(h.Assets.SourceURL(), "View on Kaggle"))
		}
		for _, name := range st.Assets {
			a, err := h.Assets.Lookup(name)
			if err != nil {
				continue
			}
			body = append(body, html.A(
				html.Class("button"),
				html.Href("/?show="+st.ID+":"+a.Name),
				gomponents.Text(stageVerb(st.ID)+" "+a.Caption),
			))
			if show.stage == st.ID && show.asset == a.Name {
				body = append(body, figure(a))
			}
		}
		cols = append(cols, html.Div(body...))
	}
	return html.Section(html.Class("stages"), gomponents.Group(cols))
}

// stageVerb prefixes the strategy buttons of each stage.
func stageVerb(stageID string) string {
	switch stageID {
	case "test":
		return "Test"
	case "prod":
		return "Prod"
	}
	return "Show"
}

func externalLink(href, text string) gomponents.Node {
	return html.A(html.Href(href), html.Target("_blank"), html.Rel("noopener noreferrer"), gomponents.Text(text))
}

func figure(a assets.Asset) gomponents.Node {
	return html.Figure(
		html.Img(html.Src("/assets/"+a.Name), html.Alt(a.Caption)),
		html.FigCaption(gomponents.Text(a.Caption)),
	)
}

func explorerSection(v *explorer.View) gomponents.Node {
	if v == nil {
		return html.P(gomponents.Text("Choose an environment and a role in the sidebar, then connect."))
	}
	if v.Failed() {
		return html.Div(
			html.Div(html.Class("alert error"), gomponents.Text(v.Error)),
			gomponents.If(v.Hint != "", html.Div(html.Class("alert info"), gomponents.Text(v.Hint))),
		)
	}

	tableItems := make([]gomponents.Node, 0, len(v.Tables))
	for _, t := range v.Tables {
		tableItems = append(tableItems, html.Li(html.Code(gomponents.Text(t.Name))))
	}

	nodes := []gomponents.Node{
		html.Div(html.Class("alert success"), gomponents.Text(v.ConnectedMessage())),
		html.H3(gomponents.Text("Role Access Info")),
		html.P(html.Strong(gomponents.Text("User: ")), html.Code(gomponents.Text(v.Role))),
		html.P(html.Strong(gomponents.Text("Connection: ")), html.Code(gomponents.Text(v.Connection))),
		gomponents.If(v.NoAuth, html.Div(html.Class("alert info"), gomponents.Text(v.AccessMessage()))),
		html.P(html.Strong(gomponents.Text("Accessible Tables:"))),
		html.Ul(gomponents.Group(tableItems)),
	}
	for _, t := range v.Tables {
		nodes = append(nodes, tableSection(t))
	}
	return html.Div(nodes...)
}

func tableSection(t explorer.TableView) gomponents.Node {
	rows := make([]gomponents.Node, 0, len(t.Columns))
	for _, c := range t.Columns {
		rows = append(rows, html.Tr(
			gomponents.If(c.Sensitive, html.Class("pii")),
			html.Td(gomponents.Text(c.Name)),
			html.Td(gomponents.Text(c.Type)),
			html.Td(gomponents.Text(strconv.FormatBool(c.Nullable))),
			html.Td(gomponents.Text(strconv.FormatBool(c.PrimaryKey))),
			html.Td(gomponents.Text(strconv.FormatBool(c.Sensitive))),
		))
	}

	var breakdown gomponents.Node
	switch {
	case t.Warning != "":
		breakdown = html.Div(html.Class("alert warning"), gomponents.Text(t.Warning))
	case t.Chart != nil:
		breakdown = chart(t.Chart)
	}

	return html.Section(
		html.Hr(),
		html.H3(gomponents.Text("Table: "), html.Code(gomponents.Text(t.Name))),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Column")),
				html.Th(gomponents.Text("Type")),
				html.Th(gomponents.Text("Nullable")),
				html.Th(gomponents.Text("Primary Key")),
				html.Th(gomponents.Text("PII")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
		breakdown,
	)
}

// chart draws counts as horizontal bars scaled to the largest count.
func chart(counts []report.ClassificationCount) gomponents.Node {
	var top int64
	for _, c := range counts {
		if c.Count > top {
			top = c.Count
		}
	}
	rows := make([]gomponents.Node, 0, len(counts))
	for _, c := range counts {
		pct := 0.0
		if top > 0 {
			pct = float64(c.Count) / float64(top) * 100
		}
		rows = append(rows, html.Div(
			html.Class("row"),
			html.Span(html.Class("label"), gomponents.Text(c.Label)),
			html.Div(html.Class("bar"), html.Style(fmt.Sprintf("width: %.1f%%", pct))),
			html.Span(html.Class("value"), gomponents.Text(strconv.FormatInt(c.Count, 10))),
		))
	}
	return html.Div(
		html.Class("chart"),
		html.H4(gomponents.Text("Classification Distribution")),
		gomponents.Group(rows),
	)
}
