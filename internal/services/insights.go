package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/util"
)

const (
	largeDatasetRows     = 2_000_000
	maxDistributions     = 3
	maxCategories        = 10
	minTrendDates        = 3
	maxTrendPoints       = 60
	maxCorrelations      = 5
	trendNote            = "Summed by date"
	contextFromResult    = "From query result"
	emptyReportSummary   = "No data returned for the query. Adjust filters or table selection."
	trendDateLayout      = "2006-01-02"
	metricAggDefault     = "sum"
	correlationMinPoints = 2
)

// InsightAgent derives KPIs, distributions, trends and correlations from a
// query result. It holds no mutable state and never modifies its input.
type InsightAgent struct {
	largeRows int
	trend     func(ds *models.Dataset, timeField, metric string) (models.Trend, bool)
	correlate func(ds *models.Dataset, numeric []string) []models.Correlation
}

type InsightOption func(*InsightAgent)

// WithLargeRowThreshold sets the row count above which the report carries
// the large dataset warning.
func WithLargeRowThreshold(n int) InsightOption {
	return func(a *InsightAgent) {
		if n > 0 {
			a.largeRows = n
		}
	}
}

func NewInsightAgent(opts ...InsightOption) *InsightAgent {
	a := &InsightAgent{
		largeRows: largeDatasetRows,
		trend:     trend,
		correlate: correlations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate builds the insight report for ds. plan may be nil.
func (a *InsightAgent) Generate(ds *models.Dataset, plan *models.Plan) models.InsightReport {
	if ds.IsEmpty() {
		return emptyReport()
	}

	roles := models.Classify(ds)
	report := models.NewInsightReport()

	if ds.NumRows() > a.largeRows {
		report.Warnings = append(report.Warnings, models.WarningLargeDataset)
	}

	report.KPIs = kpis(ds, plan, roles)
	report.Distributions = distributions(ds, roles)

	if len(roles.Temporal) > 0 && len(roles.Numeric) > 0 {
		res := guard(models.WarningTrendFailed, func() []models.Trend {
			if t, ok := a.trend(ds, roles.Temporal[0], roles.Numeric[0]); ok {
				return []models.Trend{t}
			}
			return []models.Trend{}
		})
		if res.failed() {
			report.Warnings = append(report.Warnings, res.warning)
		} else {
			report.Trends = res.value
		}
	}

	if len(roles.Numeric) >= 2 {
		res := guard(models.WarningCorrelationFailed, func() []models.Correlation {
			return a.correlate(ds, roles.Numeric)
		})
		if res.failed() {
			report.Warnings = append(report.Warnings, res.warning)
		} else {
			report.Correlations = res.value
		}
	}

	report.Summary = summarize(ds, report)
	return report
}

func emptyReport() models.InsightReport {
	report := models.NewInsightReport()
	report.KPIs = []models.KPI{{Title: "No Data", Value: "0 rows", Context: "Query returned no records"}}
	report.Summary = emptyReportSummary
	report.Warnings = []string{models.WarningEmptyResult}
	return report
}

// outcome is the result of a sub-step that may fault: either a value or the
// warning recorded in its place.
type outcome[T any] struct {
	value   T
	warning string
}

func (o outcome[T]) failed() bool { return o.warning != "" }

func guard[T any](warning string, fn func() T) (out outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Named("insights").Warnw("insight step failed", "warning", warning, "panic", r)
			out = outcome[T]{warning: warning}
		}
	}()
	return outcome[T]{value: fn()}
}

func kpis(ds *models.Dataset, plan *models.Plan, roles models.ColumnRoles) []models.KPI {
	out := []models.KPI{{
		Title:   "Rows",
		Value:   humanize.Comma(int64(ds.NumRows())),
		Context: "Returned rows",
	}}

	for _, m := range plan.MetricList() {
		if kpi, ok := metricKPI(ds, m, roles); ok {
			out = append(out, kpi)
		}
	}

	if len(out) > 1 {
		return out
	}

	out = append(out, models.KPI{
		Title:   "Columns",
		Value:   humanize.Comma(int64(ds.NumCols())),
		Context: "Returned columns",
	})
	if len(roles.Numeric) > 0 {
		col := roles.Numeric[0]
		vals := ds.Floats(col)
		out = append(out,
			models.KPI{Title: fmt.Sprintf("Sum(%s)", col), Value: Format(floats.Sum(vals)), Context: "Total"},
			models.KPI{Title: fmt.Sprintf("Avg(%s)", col), Value: Format(mean(vals)), Context: "Mean"},
		)
	}
	return out
}

func metricKPI(ds *models.Dataset, m models.Metric, roles models.ColumnRoles) (models.KPI, bool) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return models.KPI{}, false
	}

	if util.Contains(roles.Numeric, m.Name) {
		vals := ds.Floats(m.Name)
		if len(vals) == 0 {
			return models.KPI{}, false
		}
		v := vals[0]
		if len(vals) > 1 {
			v = floats.Sum(vals)
		}
		return models.KPI{Title: m.Name, Value: Format(v), Context: contextFromResult}, true
	}

	if m.Field == "" || !util.Contains(roles.Numeric, m.Field) {
		return models.KPI{}, false
	}
	vals := ds.Floats(m.Field)
	if len(vals) == 0 {
		return models.KPI{}, false
	}

	agg := strings.ToLower(strings.TrimSpace(m.Agg))
	var v float64
	switch agg {
	case "avg", "mean":
		agg, v = "avg", mean(vals)
	case "min":
		v = floats.Min(vals)
	case "max":
		v = floats.Max(vals)
	case "count":
		v = float64(len(vals))
	default:
		agg, v = metricAggDefault, floats.Sum(vals)
	}

	return models.KPI{
		Title:   m.Name,
		Value:   Format(v),
		Context: fmt.Sprintf("%s(%s)", strings.ToUpper(agg), m.Field),
	}, true
}

func distributions(ds *models.Dataset, roles models.ColumnRoles) []models.Distribution {
	out := []models.Distribution{}
	for _, col := range roles.Categorical {
		if len(out) == maxDistributions {
			break
		}
		out = append(out, models.Distribution{Column: col, Top: topCategories(ds.Values(col), maxCategories)})
	}
	return out
}

// topCategories counts labels and returns the n most frequent. Ties keep
// first-seen order.
func topCategories(values []any, n int) []models.CategoryCount {
	counts := map[string]int{}
	var order []string
	for _, v := range values {
		label := models.Label(v)
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}

	top := make([]models.CategoryCount, 0, len(order))
	for _, label := range order {
		top = append(top, models.CategoryCount{Label: label, Count: counts[label]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })

	if len(top) > n {
		top = top[:n]
	}
	return top
}

var trendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	trendDateLayout,
	"2006/01/02",
}

func coerceTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range trendTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// trend sums metric per calendar date of timeField. It reports false when
// fewer than minTrendDates distinct dates remain.
func trend(ds *models.Dataset, timeField, metric string) (models.Trend, bool) {
	times := ds.Values(timeField)
	values := ds.Values(metric)

	sums := map[string]float64{}
	for i := range times {
		t, ok := coerceTime(times[i])
		if !ok || models.IsMissing(values[i]) {
			continue
		}
		f, ok := models.ToFloat(values[i])
		if !ok {
			continue
		}
		sums[t.Format(trendDateLayout)] += f
	}

	if len(sums) < minTrendDates {
		return models.Trend{}, false
	}

	dates := make([]string, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > maxTrendPoints {
		dates = dates[len(dates)-maxTrendPoints:]
	}

	points := make([]models.TrendPoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, models.TrendPoint{Date: d, Value: sums[d]})
	}

	return models.Trend{TimeField: timeField, Metric: metric, Points: points, Note: trendNote}, true
}

// correlations ranks Pearson coefficients of every numeric column pair,
// each computed over the rows where both values are present.
func correlations(ds *models.Dataset, numeric []string) []models.Correlation {
	cols := make([][]any, len(numeric))
	for i, name := range numeric {
		cols[i] = ds.Values(name)
	}

	var pairs []models.Correlation
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r, ok := pearson(cols[i], cols[j])
			if !ok {
				continue
			}
			pairs = append(pairs, models.Correlation{A: numeric[i], B: numeric[j], Corr: r})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].Corr), math.Abs(pairs[j].Corr)
		if ai != aj {
			return ai > aj
		}
		if pairs[i].Corr != pairs[j].Corr {
			return pairs[i].Corr > pairs[j].Corr
		}
		if pairs[i].A != pairs[j].A {
			return pairs[i].A > pairs[j].A
		}
		return pairs[i].B > pairs[j].B
	})

	if len(pairs) > maxCorrelations {
		pairs = pairs[:maxCorrelations]
	}
	if pairs == nil {
		pairs = []models.Correlation{}
	}
	return pairs
}

func pearson(a, b []any) (float64, bool) {
	var xs, ys []float64
	for i := range a {
		if models.IsMissing(a[i]) || models.IsMissing(b[i]) {
			continue
		}
		x, okx := models.ToFloat(a[i])
		y, oky := models.ToFloat(b[i])
		if !okx || !oky {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < correlationMinPoints {
		return 0, false
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func summarize(ds *models.Dataset, report models.InsightReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Returned %s rows and %s columns.",
		humanize.Comma(int64(ds.NumRows())), humanize.Comma(int64(ds.NumCols())))

	if len(report.Distributions) > 0 {
		fmt.Fprintf(&b, " Strongest categorical breakdown: %s.", report.Distributions[0].Column)
	}
	if len(report.Trends) > 0 {
		b.WriteString(" Trend signals detected.")
	}
	if len(report.Correlations) > 0 {
		c := report.Correlations[0]
		fmt.Fprintf(&b, " Strongest numeric relationship: %s vs %s (corr=%.2f).", c.A, c.B, c.Corr)
	}
	return b.String()
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}
