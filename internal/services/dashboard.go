package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/util"
)

const (
	defaultPreviewRows = 200
	maxKPICards        = 12
	maxWarningBadges   = 6
	defaultChartTitle  = "Chart"
	autoBarTopN        = 20
	aggregateSum       = "sum"
)

// DashboardAgent turns a result, a plan and an insight report into chart
// specs and a self-contained HTML document.
type DashboardAgent struct {
	newID       func() string
	previewRows int
}

type DashboardOption func(*DashboardAgent)

// WithIDGenerator replaces the random chart id generator.
func WithIDGenerator(fn func() string) DashboardOption {
	return func(a *DashboardAgent) {
		a.newID = fn
	}
}

func WithPreviewRows(n int) DashboardOption {
	return func(a *DashboardAgent) {
		if n > 0 {
			a.previewRows = n
		}
	}
}

func NewDashboardAgent(opts ...DashboardOption) *DashboardAgent {
	a := &DashboardAgent{
		newID:       randomID,
		previewRows: defaultPreviewRows,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Build renders the dashboard for ds. plan may be nil.
func (a *DashboardAgent) Build(ds *models.Dataset, plan *models.Plan, report models.InsightReport) models.Dashboard {
	if ds.IsEmpty() {
		return models.Dashboard{
			HTML: renderEmptyDocument("No data returned from query."),
			Meta: models.DashboardMeta{Status: "empty", Reason: "no rows"},
		}
	}

	charts := a.ChartSpecs(ds, plan)
	kpis := util.Truncate(report.KPIs, maxKPICards)

	summaries := make([]models.ChartSummary, 0, len(charts))
	for _, c := range charts {
		summaries = append(summaries, c.Summary())
	}

	doc := document{
		id:          "dash_" + a.newID(),
		summary:     report.Summary,
		warnings:    util.Truncate(report.Warnings, maxWarningBadges),
		kpis:        kpis,
		charts:      charts,
		columns:     ds.ColumnNames(),
		previewRows: util.Truncate(ds.Rows, a.previewRows),
		records:     ds.Records(a.previewRows),
	}

	return models.Dashboard{
		HTML: doc.render(),
		Meta: models.DashboardMeta{
			DashboardType: models.DashboardTypePlotly,
			Charts:        summaries,
			KPIs:          kpis,
			Rows:          ds.NumRows(),
			Cols:          ds.NumCols(),
		},
		Charts: charts,
	}
}

// ChartSpecs returns the normalized plan visuals, or auto-detected charts
// when no plan visual survives normalization.
func (a *DashboardAgent) ChartSpecs(ds *models.Dataset, plan *models.Plan) []models.ChartSpec {
	var specs []models.ChartSpec
	for _, v := range plan.VisualList() {
		if spec, ok := a.normalizeVisual(v, ds); ok {
			specs = append(specs, spec)
		}
	}
	if len(specs) > 0 {
		return specs
	}
	return a.autoCharts(ds)
}

// normalizeVisual validates a plan visual against the dataset schema. A
// visual naming a missing column is dropped, never repaired.
func (a *DashboardAgent) normalizeVisual(v models.Visual, ds *models.Dataset) (models.ChartSpec, bool) {
	t := models.ChartType(strings.ToLower(strings.TrimSpace(v.Type)))
	if !t.Valid() {
		t = models.ChartLine
	}
	title := v.Title
	if title == "" {
		title = defaultChartTitle
	}

	if !v.X.IsZero() && !ds.HasColumn(v.X.Column()) {
		return models.ChartSpec{}, false
	}

	y := v.Y
	switch {
	case y.IsList():
		var kept []string
		for _, c := range y.Columns() {
			if ds.HasColumn(c) {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			return models.ChartSpec{}, false
		}
		y = models.ColumnsAxis(kept...)
	case !y.IsZero() && !ds.HasColumn(y.Column()):
		return models.ChartSpec{}, false
	}

	spec := models.ChartSpec{
		ID:    a.chartID(),
		Type:  t,
		Title: title,
		X:     v.X,
		Y:     y,
	}
	if strings.EqualFold(strings.TrimSpace(v.Aggregate), aggregateSum) {
		spec.Aggregate = aggregateSum
	}
	if v.TopN > 0 {
		spec.TopN = v.TopN
	}
	return spec, true
}

func (a *DashboardAgent) autoCharts(ds *models.Dataset) []models.ChartSpec {
	roles := models.Classify(ds)
	charts := []models.ChartSpec{}

	if len(roles.Temporal) > 0 && len(roles.Numeric) > 0 {
		charts = append(charts, models.ChartSpec{
			ID:    a.chartID(),
			Type:  models.ChartLine,
			Title: fmt.Sprintf("Trend: %s over time", roles.Numeric[0]),
			X:     models.ColumnAxis(roles.Temporal[0]),
			Y:     models.ColumnAxis(roles.Numeric[0]),
		})
	}

	if len(roles.Categorical) > 0 && len(roles.Numeric) > 0 {
		charts = append(charts, models.ChartSpec{
			ID:        a.chartID(),
			Type:      models.ChartBar,
			Title:     fmt.Sprintf("Top categories: %s by %s", roles.Numeric[0], roles.Categorical[0]),
			X:         models.ColumnAxis(roles.Categorical[0]),
			Y:         models.ColumnAxis(roles.Numeric[0]),
			Aggregate: aggregateSum,
			TopN:      autoBarTopN,
		})
	}

	if len(roles.Numeric) >= 2 {
		charts = append(charts, models.ChartSpec{
			ID:    a.chartID(),
			Type:  models.ChartScatter,
			Title: fmt.Sprintf("Scatter: %s vs %s", roles.Numeric[0], roles.Numeric[1]),
			X:     models.ColumnAxis(roles.Numeric[0]),
			Y:     models.ColumnAxis(roles.Numeric[1]),
		})
	}

	if len(roles.Numeric) > 0 {
		charts = append(charts, models.ChartSpec{
			ID:    a.chartID(),
			Type:  models.ChartHist,
			Title: fmt.Sprintf("Distribution: %s", roles.Numeric[0]),
			X:     models.ColumnAxis(roles.Numeric[0]),
			Y:     models.NoAxis(),
		})
	}

	if len(charts) == 0 && ds.NumCols() >= 2 {
		charts = append(charts, models.ChartSpec{
			ID:    a.chartID(),
			Type:  models.ChartLine,
			Title: "Auto Chart",
			X:     models.ColumnAxis(ds.Columns[0].Name),
			Y:     models.ColumnAxis(ds.Columns[1].Name),
		})
	}

	return charts
}

func (a *DashboardAgent) chartID() string {
	return "chart_" + a.newID()
}
