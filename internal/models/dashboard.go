package models

const DashboardTypePlotly = "plotly_html"

// DashboardMeta describes a built dashboard. An empty dataset yields only
// Status and Reason.
type DashboardMeta struct {
	Status        string         `json:"status,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	DashboardType string         `json:"dashboard_type,omitempty"`
	Charts        []ChartSummary `json:"charts,omitempty"`
	KPIs          []KPI          `json:"kpis,omitempty"`
	Rows          int            `json:"rows,omitempty"`
	Cols          int            `json:"cols,omitempty"`
}

type Dashboard struct {
	HTML   string        `json:"html"`
	Meta   DashboardMeta `json:"meta"`
	Charts []ChartSpec   `json:"-"`
}

// PipelineResult is everything one pipeline run produced.
type PipelineResult struct {
	Dataset   *Dataset
	Execution ExecMeta
	Insights  InsightReport
	Dashboard Dashboard
}
