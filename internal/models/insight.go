package models

type KPI struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Context string `json:"context"`
}

type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Distribution struct {
	Column string          `json:"column"`
	Top    []CategoryCount `json:"top"`
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type Trend struct {
	TimeField string       `json:"time_field"`
	Metric    string       `json:"metric"`
	Points    []TrendPoint `json:"points"`
	Note      string       `json:"note,omitempty"`
}

type Correlation struct {
	A    string  `json:"a"`
	B    string  `json:"b"`
	Corr float64 `json:"corr"`
}

// InsightReport is the structured, explainable summary of one query result.
// Every list is non-nil so the JSON shape never contains nulls.
type InsightReport struct {
	KPIs          []KPI          `json:"kpis"`
	Summary       string         `json:"summary"`
	Distributions []Distribution `json:"distributions"`
	Trends        []Trend        `json:"trends"`
	Correlations  []Correlation  `json:"correlations"`
	Warnings      []string       `json:"warnings"`
}

// Insight warning markers.
const (
	WarningEmptyResult       = "empty_result"
	WarningLargeDataset      = "large_dataframe_memory_risk"
	WarningTrendFailed       = "trend_calc_failed"
	WarningCorrelationFailed = "correlation_calc_failed"
)

func NewInsightReport() InsightReport {
	return InsightReport{
		KPIs:          []KPI{},
		Distributions: []Distribution{},
		Trends:        []Trend{},
		Correlations:  []Correlation{},
		Warnings:      []string{},
	}
}
