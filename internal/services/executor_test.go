package services_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/services"
	"github.com/21f1001434/Agentic-AI/internal/store"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
	queryrunner "github.com/21f1001434/Agentic-AI/pkg/runner"
	"github.com/21f1001434/Agentic-AI/test"
)

var _ = Describe("Executor", func() {
	const query = "SELECT * FROM sales WHERE region = :region"

	var (
		ctx    context.Context
		db     *sql.DB
		st     *store.Store
		runner *test.MockRunner
		cfg    services.ExecutorConfig
		params map[string]any
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		st = store.NewStore(db, GinkgoT().TempDir())
		Expect(st.Migrate(ctx)).To(Succeed())

		runner = test.NewMockRunner(salesDataset())
		cfg = services.ExecutorConfig{Timeout: 5 * time.Second, MaxRows: 100}
		params = map[string]any{"region": "emea"}
	})

	AfterEach(func() {
		if st != nil {
			st.Close()
		}
	})

	newExecutor := func(r services.Runner) *services.Executor {
		return services.NewExecutor(r, st.Snapshots(), st.Catalog(), cfg)
	}

	// Given an empty cache
	// When we run the same query twice
	// Then the first run should hit the database and the second the cache
	It("should cache a fresh result and serve it on the next run", func() {
		executor := newExecutor(runner)

		ds, meta, err := executor.Run(ctx, query, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Mode).To(Equal(models.ExecModeDB))
		Expect(meta.CacheHit).To(BeFalse())
		Expect(meta.Rows).To(Equal(10))
		Expect(meta.CacheKey).To(Equal(models.CacheKey(query, params)))
		Expect(meta.Seconds).To(BeNumerically(">=", 0))
		Expect(ds.NumRows()).To(Equal(10))

		cached, meta, err := executor.Run(ctx, query, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Mode).To(Equal(models.ExecModeCache))
		Expect(meta.CacheHit).To(BeTrue())
		Expect(cached.ColumnNames()).To(Equal(ds.ColumnNames()))
		Expect(cached.Values("amount")).To(Equal(ds.Values("amount")))

		Expect(runner.CallCount()).To(Equal(1))
	})

	It("should pass the limits to the runner", func() {
		_, _, err := newExecutor(runner).Run(ctx, query, params)
		Expect(err).NotTo(HaveOccurred())

		calls := runner.Calls()
		Expect(calls).To(HaveLen(1))
		Expect(calls[0].Query).To(Equal(query))
		Expect(calls[0].Params).To(Equal(params))
		Expect(calls[0].Timeout).To(Equal(5 * time.Second))
		Expect(calls[0].MaxRows).To(Equal(100))
	})

	It("should register the snapshot in the catalog", func() {
		_, meta, err := newExecutor(runner).Run(ctx, query, params)
		Expect(err).NotTo(HaveOccurred())

		entries, err := st.Catalog().List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name).To(Equal(meta.CacheKey))
		Expect(entries[0].Path).To(Equal(st.Snapshots().PathFor(meta.CacheKey)))
	})

	It("should key different parameters separately", func() {
		executor := newExecutor(runner)

		_, first, err := executor.Run(ctx, query, params)
		Expect(err).NotTo(HaveOccurred())
		_, second, err := executor.Run(ctx, query, map[string]any{"region": "apac"})
		Expect(err).NotTo(HaveOccurred())

		Expect(second.CacheKey).NotTo(Equal(first.CacheKey))
		Expect(second.Mode).To(Equal(models.ExecModeDB))
		Expect(runner.CallCount()).To(Equal(2))
	})

	Context("offline only", func() {
		BeforeEach(func() {
			cfg.OfflineOnly = true
		})

		// Given offline-only mode and an empty cache
		// When we run a query
		// Then a configuration error should be returned without touching the runner
		It("should fail on a cache miss without calling the runner", func() {
			_, _, err := newExecutor(runner).Run(ctx, query, params)

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(models.CacheKey(query, params)))
			Expect(runner.CallCount()).To(BeZero())
		})

		It("should serve cached snapshots", func() {
			_, err := st.Snapshots().Put(ctx, models.CacheKey(query, params), salesDataset())
			Expect(err).NotTo(HaveOccurred())

			ds, meta, err := newExecutor(nil).Run(ctx, query, params)

			Expect(err).NotTo(HaveOccurred())
			Expect(meta.Mode).To(Equal(models.ExecModeCache))
			Expect(ds.NumRows()).To(Equal(10))
		})
	})

	It("should fail on a miss without a runner", func() {
		_, _, err := newExecutor(nil).Run(ctx, query, params)

		Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
	})

	It("should return runner errors unchanged", func() {
		boom := errors.New("boom")
		runner.Err = boom

		_, _, err := newExecutor(runner).Run(ctx, query, params)

		Expect(err).To(BeIdenticalTo(boom))
		keys, kerr := st.Snapshots().Keys()
		Expect(kerr).NotTo(HaveOccurred())
		Expect(keys).To(BeEmpty())
	})

	// Given a result the snapshot store cannot write
	// When we run the query
	// Then the fresh result should still be returned
	It("should not fail when the snapshot cannot be written", func() {
		runner.Dataset = models.NewDataset(nil, nil)

		ds, meta, err := newExecutor(runner).Run(ctx, query, params)

		Expect(err).NotTo(HaveOccurred())
		Expect(ds).To(BeIdenticalTo(runner.Dataset))
		Expect(meta.Mode).To(Equal(models.ExecModeDB))
		entries, err := st.Catalog().List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})
})

var _ = Describe("Executor with a DuckDB source", func() {
	const query = `
		SELECT [i, i + 1] AS tags,
		       INTERVAL 1 HOUR * i AS iv,
		       CASE WHEN i % 2 = 0 THEN 'a' ELSE 'b' END AS cat,
		       DATE '2024-01-01' + CAST(i AS INTEGER) AS d,
		       CAST(i AS INTEGER) AS n
		FROM range(6) t(i)
		ORDER BY i`

	var (
		ctx    context.Context
		st     *store.Store
		source *queryrunner.DuckDBRunner
	)

	BeforeEach(func() {
		ctx = context.Background()

		db, err := store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		st = store.NewStore(db, GinkgoT().TempDir())
		Expect(st.Migrate(ctx)).To(Succeed())

		source, err = queryrunner.NewDuckDBRunner(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(source.Close()).To(Succeed())
		st.Close()
	})

	// Given a query returning list, interval, text, date and integer columns
	// When we run it once from the database and once from the cache
	// Then both runs should yield the same columns, insights and charts
	It("should classify a result the same way on a miss and on a hit", func() {
		executor := services.NewExecutor(source, st.Snapshots(), st.Catalog(),
			services.ExecutorConfig{Timeout: 5 * time.Second, MaxRows: 100})

		fresh, meta, err := executor.Run(ctx, query, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Mode).To(Equal(models.ExecModeDB))

		cached, meta, err := executor.Run(ctx, query, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Mode).To(Equal(models.ExecModeCache))

		Expect(cached.Columns).To(Equal(fresh.Columns))
		Expect(cached.Values("tags")).To(Equal(fresh.Values("tags")))
		Expect(cached.Values("iv")).To(Equal(fresh.Values("iv")))

		agent := services.NewInsightAgent()
		Expect(agent.Generate(cached, nil)).To(Equal(agent.Generate(fresh, nil)))

		freshCharts := services.NewDashboardAgent(services.WithIDGenerator(sequentialIDs())).ChartSpecs(fresh, nil)
		cachedCharts := services.NewDashboardAgent(services.WithIDGenerator(sequentialIDs())).ChartSpecs(cached, nil)
		Expect(cachedCharts).To(Equal(freshCharts))
	})
})
