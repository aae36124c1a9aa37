package services_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/services"
)

var _ = Describe("InsightAgent", func() {
	var agent *services.InsightAgent

	BeforeEach(func() {
		agent = services.NewInsightAgent()
	})

	Context("empty result", func() {
		// Given a dataset with columns but no rows
		// When we generate insights
		// Then the canonical empty report should be returned
		It("should return the canonical empty report", func() {
			ds := models.NewDataset([]string{"a", "b"}, nil)

			report := agent.Generate(ds, nil)

			Expect(report.KPIs).To(Equal([]models.KPI{{Title: "No Data", Value: "0 rows", Context: "Query returned no records"}}))
			Expect(report.Summary).To(Equal("No data returned for the query. Adjust filters or table selection."))
			Expect(report.Warnings).To(Equal([]string{models.WarningEmptyResult}))
			Expect(report.Distributions).To(BeEmpty())
			Expect(report.Trends).To(BeEmpty())
			Expect(report.Correlations).To(BeEmpty())
		})

		It("should treat a nil dataset as empty", func() {
			report := agent.Generate(nil, nil)
			Expect(report.Warnings).To(ConsistOf(models.WarningEmptyResult))
		})
	})

	Context("date, category and amount", func() {
		var report models.InsightReport

		BeforeEach(func() {
			report = agent.Generate(salesDataset(), nil)
		})

		It("should fall back to the row, column, sum and average KPIs", func() {
			Expect(report.KPIs).To(Equal([]models.KPI{
				{Title: "Rows", Value: "10", Context: "Returned rows"},
				{Title: "Columns", Value: "3", Context: "Returned columns"},
				{Title: "Sum(amount)", Value: "55.00", Context: "Total"},
				{Title: "Avg(amount)", Value: "5.50", Context: "Mean"},
			}))
		})

		It("should count categories", func() {
			Expect(report.Distributions).To(HaveLen(1))
			Expect(report.Distributions[0].Column).To(Equal("category"))
			Expect(report.Distributions[0].Top).To(Equal([]models.CategoryCount{
				{Label: "a", Count: 5},
				{Label: "b", Count: 5},
			}))
		})

		// Given two rows per date
		// When the trend is computed
		// Then each point should be the per-date sum in date order
		It("should sum the metric per date", func() {
			Expect(report.Trends).To(HaveLen(1))
			t := report.Trends[0]
			Expect(t.TimeField).To(Equal("date"))
			Expect(t.Metric).To(Equal("amount"))
			Expect(t.Note).To(Equal("Summed by date"))
			Expect(t.Points).To(Equal([]models.TrendPoint{
				{Date: "2024-03-01", Value: 3},
				{Date: "2024-03-02", Value: 7},
				{Date: "2024-03-03", Value: 11},
				{Date: "2024-03-04", Value: 15},
				{Date: "2024-03-05", Value: 19},
			}))
		})

		It("should not correlate a single numeric column", func() {
			Expect(report.Correlations).To(BeEmpty())
		})

		It("should summarize the report", func() {
			Expect(report.Summary).To(Equal("Returned 10 rows and 3 columns. Strongest categorical breakdown: category. Trend signals detected."))
			Expect(report.Warnings).To(BeEmpty())
		})
	})

	Context("trend thresholds", func() {
		It("should skip the trend with fewer than three dates", func() {
			day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			ds := models.NewDataset([]string{"d", "v"}, [][]any{
				{day, 1}, {day, 2}, {day.AddDate(0, 0, 1), 3},
			})

			Expect(agent.Generate(ds, nil).Trends).To(BeEmpty())
		})

		It("should keep the last 60 dates", func() {
			day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			rows := make([][]any, 0, 90)
			for i := 0; i < 90; i++ {
				rows = append(rows, []any{day.AddDate(0, 0, i), i})
			}

			trends := agent.Generate(models.NewDataset([]string{"d", "v"}, rows), nil).Trends

			Expect(trends).To(HaveLen(1))
			Expect(trends[0].Points).To(HaveLen(60))
			Expect(trends[0].Points[0].Date).To(Equal("2024-01-31"))
			Expect(trends[0].Points[59].Value).To(Equal(89.0))
		})
	})

	Context("three numeric columns", func() {
		// Given y = 2x and a loosely related z
		// When we generate insights
		// Then the perfectly correlated pair should rank first
		It("should rank correlations by strength", func() {
			report := agent.Generate(numericDataset(), nil)

			Expect(report.Correlations).To(HaveLen(3))
			Expect(report.Correlations[0].A).To(Equal("x"))
			Expect(report.Correlations[0].B).To(Equal("y"))
			Expect(report.Correlations[0].Corr).To(BeNumerically("~", 1, 1e-9))
			for _, c := range report.Correlations[1:] {
				Expect(c.B).To(Equal("z"))
				Expect(c.Corr).To(BeNumerically("<", 0.9))
			}
			Expect(report.Summary).To(HavePrefix("Returned 8 rows and 3 columns. Strongest numeric relationship: x vs y (corr=1.00)."))
		})

		It("should skip pairs without variance", func() {
			ds := models.NewDataset([]string{"a", "b"}, [][]any{{1, 5}, {2, 5}, {3, 5}})

			Expect(agent.Generate(ds, nil).Correlations).To(BeEmpty())
		})
	})

	Context("plan metrics", func() {
		It("should compute metrics from the plan", func() {
			plan := &models.Plan{Metrics: []models.Metric{
				{Name: "amount"},
				{Name: "Average amount", Agg: "mean", Field: "amount"},
				{Name: "Largest", Agg: "MAX", Field: "amount"},
				{Name: "Ignored", Agg: "sum", Field: "category"},
				{Name: "Unknown", Field: "missing"},
			}}

			report := agent.Generate(salesDataset(), plan)

			Expect(report.KPIs).To(Equal([]models.KPI{
				{Title: "Rows", Value: "10", Context: "Returned rows"},
				{Title: "amount", Value: "55.00", Context: "From query result"},
				{Title: "Average amount", Value: "5.50", Context: "AVG(amount)"},
				{Title: "Largest", Value: "10.00", Context: "MAX(amount)"},
			}))
		})

		// Given a single row result
		// When a metric names a numeric column
		// Then the KPI should show that value as is
		It("should use the value of a single row", func() {
			ds := models.NewDataset([]string{"total_revenue"}, [][]any{{42.5}})
			plan := &models.Plan{Metrics: []models.Metric{{Name: "total_revenue"}}}

			report := agent.Generate(ds, plan)

			Expect(report.KPIs).To(Equal([]models.KPI{
				{Title: "Rows", Value: "1", Context: "Returned rows"},
				{Title: "total_revenue", Value: "42.50", Context: "From query result"},
			}))
		})

		It("should fall back when no metric resolves", func() {
			plan := &models.Plan{Metrics: []models.Metric{{Name: "nothing", Field: "missing"}}}

			report := agent.Generate(salesDataset(), plan)

			Expect(report.KPIs).To(HaveLen(4))
			Expect(report.KPIs[1].Title).To(Equal("Columns"))
		})
	})

	Context("distributions", func() {
		// Given four text columns and one holding twelve labels plus missing values
		// When we generate insights
		// Then only the first three columns are counted, each capped at ten labels
		It("should cap columns and labels", func() {
			var rows [][]any
			for i := 0; i < 20; i++ {
				rows = append(rows, []any{nil, "x", "y", "z"})
			}
			for i := 0; i < 12; i++ {
				label := fmt.Sprintf("l%02d", i)
				for n := 0; n < 13-i; n++ {
					rows = append(rows, []any{label, "x", "y", "z"})
				}
			}
			ds := models.NewDataset([]string{"c1", "c2", "c3", "c4"}, rows)

			report := agent.Generate(ds, nil)

			Expect(report.Distributions).To(HaveLen(3))
			Expect(report.Distributions[0].Column).To(Equal("c1"))
			Expect(report.Distributions[1].Column).To(Equal("c2"))
			Expect(report.Distributions[2].Column).To(Equal("c3"))

			top := report.Distributions[0].Top
			Expect(top).To(HaveLen(10))
			Expect(top[0]).To(Equal(models.CategoryCount{Label: "NULL", Count: 20}))
			Expect(top[1]).To(Equal(models.CategoryCount{Label: "l00", Count: 13}))
			Expect(top[9]).To(Equal(models.CategoryCount{Label: "l08", Count: 5}))
		})
	})

	Context("large results", func() {
		It("should warn above the row threshold", func() {
			report := services.NewInsightAgent(services.WithLargeRowThreshold(9)).Generate(salesDataset(), nil)

			Expect(report.Warnings).To(Equal([]string{models.WarningLargeDataset}))
			Expect(report.KPIs).NotTo(BeEmpty())
		})

		It("should not warn at the threshold", func() {
			report := services.NewInsightAgent(services.WithLargeRowThreshold(10)).Generate(salesDataset(), nil)

			Expect(report.Warnings).To(BeEmpty())
		})
	})

	It("should not modify the dataset", func() {
		ds := salesDataset()
		before := salesDataset()

		agent.Generate(ds, nil)

		Expect(ds).To(Equal(before))
	})
})
