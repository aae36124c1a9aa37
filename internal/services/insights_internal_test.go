package services

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

var _ = Describe("InsightAgent step failures", func() {
	var ds *models.Dataset

	BeforeEach(func() {
		day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		rows := make([][]any, 0, 6)
		for i := 0; i < 6; i++ {
			rows = append(rows, []any{day.AddDate(0, 0, i), "north", float64(i), float64(i * i)})
		}
		ds = models.NewDataset([]string{"day", "region", "units", "revenue"}, rows)
	})

	// Given a trend step that panics
	// When we generate insights
	// Then the failure should become a warning and the rest of the report should survive
	It("should record a failed trend as a warning", func() {
		agent := NewInsightAgent()
		agent.trend = func(*models.Dataset, string, string) (models.Trend, bool) {
			panic("trend exploded")
		}

		report := agent.Generate(ds, nil)

		Expect(report.Warnings).To(Equal([]string{models.WarningTrendFailed}))
		Expect(report.Trends).To(BeEmpty())
		Expect(report.Distributions).To(HaveLen(1))
		Expect(report.Correlations).To(HaveLen(1))
		Expect(report.Summary).NotTo(ContainSubstring("Trend signals"))
	})

	It("should record a failed correlation as a warning", func() {
		agent := NewInsightAgent()
		agent.correlate = func(*models.Dataset, []string) []models.Correlation {
			panic("correlation exploded")
		}

		report := agent.Generate(ds, nil)

		Expect(report.Warnings).To(Equal([]string{models.WarningCorrelationFailed}))
		Expect(report.Correlations).To(BeEmpty())
		Expect(report.Trends).To(HaveLen(1))
		Expect(report.KPIs).NotTo(BeEmpty())
	})
})
