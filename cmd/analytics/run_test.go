package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/config"
	"github.com/21f1001434/Agentic-AI/internal/models"
)

var _ = Describe("run command", func() {
	Context("parseParams", func() {
		It("should decode scalar values", func() {
			params, err := parseParams("", []string{"region=emea", "limit=5", "ratio=0.5", "flag=true", "note=a=b"})

			Expect(err).NotTo(HaveOccurred())
			Expect(params).To(Equal(map[string]any{
				"region": "emea",
				"limit":  int64(5),
				"ratio":  0.5,
				"flag":   true,
				"note":   "a=b",
			}))
		})

		It("should let pairs override the file", func() {
			file := filepath.Join(GinkgoT().TempDir(), "params.yaml")
			Expect(os.WriteFile(file, []byte("region: apac\nyear: 2024\n"), 0o644)).To(Succeed())

			params, err := parseParams(file, []string{"region=emea"})

			Expect(err).NotTo(HaveOccurred())
			Expect(params).To(Equal(map[string]any{"region": "emea", "year": int64(2024)}))
		})

		It("should return nil without parameters", func() {
			params, err := parseParams("", nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(params).To(BeNil())
		})

		It("should reject a pair without a name", func() {
			_, err := parseParams("", []string{"=x"})

			Expect(err).To(MatchError(ContainSubstring("expected name=value")))
		})

		// Same SQL and parameters must key the same snapshot whichever
		// surface they come from.
		It("should key like an equivalent JSON request", func() {
			params, err := parseParams("", []string{"n=5"})
			Expect(err).NotTo(HaveOccurred())

			Expect(models.CacheKey("SELECT :n", params)).To(Equal(models.CacheKey("SELECT :n", map[string]any{"n": float64(5)})))
		})
	})

	It("should read the query and plan from files", func() {
		dir := GinkgoT().TempDir()
		sqlFile := filepath.Join(dir, "q.sql")
		planFile := filepath.Join(dir, "plan.yaml")
		Expect(os.WriteFile(sqlFile, []byte("SELECT 1"), 0o644)).To(Succeed())
		Expect(os.WriteFile(planFile, []byte("visuals:\n  - type: bar\n    x: region\n    y: amount\n"), 0o644)).To(Succeed())

		req, err := (&runOptions{sqlFile: sqlFile, planFile: planFile}).request()

		Expect(err).NotTo(HaveOccurred())
		Expect(req.SQL).To(Equal("SELECT 1"))
		Expect(req.Plan.Visuals).To(HaveLen(1))
		Expect(req.Plan.Visuals[0].X.Column()).To(Equal("region"))
	})

	It("should print a summary", func() {
		var buf bytes.Buffer
		result := &models.PipelineResult{
			Dataset:   models.NewDataset([]string{"a"}, [][]any{{1}}),
			Execution: models.ExecMeta{CacheKey: "abc", Mode: models.ExecModeCache},
			Insights: models.InsightReport{
				KPIs:     []models.KPI{{Title: "Rows", Value: "1", Context: "Returned rows"}},
				Summary:  "Returned 1 rows and 1 columns.",
				Warnings: []string{"large_dataframe_memory_risk"},
			},
		}

		Expect(printRunSummary(&buf, result, "out.html")).To(Succeed())

		Expect(buf.String()).To(ContainSubstring(`"cache_key": "abc"`))
		Expect(buf.String()).To(ContainSubstring("Rows"))
		Expect(buf.String()).To(ContainSubstring("large_dataframe_memory_risk"))
		Expect(buf.String()).To(ContainSubstring("out.html"))
	})
})

var _ = Describe("loadConfig", func() {
	It("should read flags into the configuration", func() {
		cmd := newRootCmd()
		Expect(cmd.ParseFlags([]string{"--offline-only", "--max-rows=42"})).To(Succeed())

		cfg, err := loadConfig(cmd)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Query.OfflineOnly).To(BeTrue())
		Expect(cfg.Query.MaxRows).To(Equal(42))
		Expect(cfg.Cache.Dir).To(Equal(config.NewConfigurationWithDefaults().Cache.Dir))
	})
})
