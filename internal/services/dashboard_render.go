package services

import (
	"encoding/json"
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

const (
	documentTitle = "Agentic Analytics Dashboard"
	plotlyURL     = "https://cdn.plot.ly/plotly-2.30.0.min.js"
)

// document is everything the HTML dashboard needs. Text nodes are escaped by
// gomponents; the embedded JSON is escaped by encoding/json.
type document struct {
	id          string
	summary     string
	warnings    []string
	kpis        []models.KPI
	charts      []models.ChartSpec
	columns     []string
	previewRows [][]any
	records     []map[string]any
}

func (d document) render() string {
	page := h.Doctype(
		h.HTML(
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(documentTitle)),
				h.Script(h.Src(plotlyURL)),
				h.StyleEl(g.Raw(dashboardCSS)),
			),
			h.Body(
				h.Main(
					h.ID(d.id),
					h.Div(
						h.Class("header"),
						h.Div(h.Class("h1"), g.Text(documentTitle)),
						h.Div(h.Class("sub"), g.Text(d.summary)),
						h.Div(d.warningBadges()...),
					),
					h.Div(h.Class("kpi-grid"), d.kpiCards()),
					h.Div(h.Class("grid"), d.chartCards()),
					h.Div(
						h.Class("table-wrap"),
						h.Div(h.Class("table-title"), g.Text(fmt.Sprintf("Data Preview (first %d rows)", len(d.previewRows)))),
						d.previewTable(),
					),
				),
				h.Script(g.Raw(d.dataScript()+dashboardJS)),
			),
		),
	)

	var b strings.Builder
	if err := page.Render(&b); err != nil {
		return renderEmptyDocument("Dashboard rendering failed.")
	}
	return b.String()
}

func (d document) warningBadges() []g.Node {
	nodes := make([]g.Node, 0, len(d.warnings))
	for _, w := range d.warnings {
		nodes = append(nodes, h.Span(h.Class("badge"), g.Text(w)))
	}
	return nodes
}

func (d document) kpiCards() g.Node {
	cards := make([]g.Node, 0, len(d.kpis))
	for _, k := range d.kpis {
		cards = append(cards, h.Div(
			h.Class("kpi"),
			h.Div(h.Class("kpi-title"), g.Text(k.Title)),
			h.Div(h.Class("kpi-value"), g.Text(k.Value)),
			h.Div(h.Class("kpi-context"), g.Text(k.Context)),
		))
	}
	return g.Group(cards)
}

func (d document) chartCards() g.Node {
	cards := make([]g.Node, 0, len(d.charts))
	for _, c := range d.charts {
		cards = append(cards, h.Div(
			h.Class("chart-card"),
			h.Div(h.Class("chart-title"), g.Text(c.Title)),
			h.Div(h.ID(c.ID), h.Class("chart")),
		))
	}
	return g.Group(cards)
}

func (d document) previewTable() g.Node {
	head := make([]g.Node, 0, len(d.columns))
	for _, c := range d.columns {
		head = append(head, h.Th(g.Text(c)))
	}

	body := make([]g.Node, 0, len(d.previewRows))
	for _, row := range d.previewRows {
		cells := make([]g.Node, 0, len(d.columns))
		for j := range d.columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			cells = append(cells, h.Td(g.Text(models.Label(v))))
		}
		body = append(body, h.Tr(cells...))
	}

	return h.Table(
		h.THead(h.Tr(head...)),
		h.TBody(body...),
	)
}

// dataScript declares DATA, FULL_COLUMNS and CHARTS for the chart script.
func (d document) dataScript() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nconst DATA = %s;\n", mustJSON(d.records))
	fmt.Fprintf(&b, "const FULL_COLUMNS = %s;\n", mustJSON(d.columns))
	fmt.Fprintf(&b, "const CHARTS = %s;\n", mustJSON(d.charts))
	return b.String()
}

// mustJSON encodes v for embedding inside a script element. encoding/json
// escapes <, > and & so the payload cannot close the element.
func mustJSON(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(out)
}

func renderEmptyDocument(message string) string {
	page := h.Doctype(
		h.HTML(
			h.Body(
				h.Style("font-family:Arial;padding:20px"),
				h.H3(g.Text("Dashboard unavailable")),
				h.P(g.Text(message)),
			),
		),
	)

	var b strings.Builder
	_ = page.Render(&b)
	return b.String()
}
