// Package services implements the analytics pipeline: query execution with
// a snapshot cache, insight extraction and dashboard synthesis.
//
// Handlers and the CLI talk to this package only. Storage and database access
// live below it in internal/store and pkg/runner.
//
// # Service Dependency Graph
//
//	Handlers / CLI
//	    │
//	    ▼
//	Pipeline ─────────┬──► Executor ───► Runner (pkg/runner)
//	                  │        ├───────► SnapshotCache (store.SnapshotStore)
//	                  │        └───────► Catalog (store.CatalogStore)
//	                  ├──► InsightAgent
//	                  └──► DashboardAgent
//
//	SnapshotService ───► Store (snapshots + catalog)
//
// # Executor
//
// Executor answers a query from the Parquet snapshot cache when it can and
// from the source database otherwise. The cache key is the SHA-256 of the SQL
// text and its sorted parameters (see models.CacheKey).
//
//	               ┌──────────────┐
//	Run(sql, p) ──►│ cache.Get    │── hit ──► catalog.Register ──► mode "cache"
//	               └──────┬───────┘
//	                      │ miss
//	                      ▼
//	                offline only? ── yes ──► ConfigurationError (runner untouched)
//	                      │ no
//	                      ▼
//	                runner.Execute ── error ──► returned unchanged
//	                      │
//	                      ▼
//	                cache.Put ──► catalog.Register ──► mode "db"
//
// Failing to write a snapshot or to register a view is logged as a warning and
// the fresh result is still returned.
//
// # InsightAgent
//
// InsightAgent is deterministic and stateless. From a dataset and an optional
// plan it derives:
//
//	┌────────────────┬──────────────────────────────────────────────────────┐
//	│ Section        │ Rule                                                 │
//	├────────────────┼──────────────────────────────────────────────────────┤
//	│ KPIs           │ Rows, plan metrics; else Columns, Sum and Avg        │
//	│ Distributions  │ top 10 labels of the first 3 categorical columns     │
//	│ Trends         │ first temporal x first numeric, summed per date,     │
//	│                │ needs 3 dates, keeps the last 60                     │
//	│ Correlations   │ Pearson over numeric pairs, top 5 by |corr|          │
//	│ Warnings       │ empty result, large dataset, failed sub-steps        │
//	└────────────────┴──────────────────────────────────────────────────────┘
//
// A failure inside the trend or correlation step is recorded as a warning
// and the rest of the report is still produced.
//
// # DashboardAgent
//
// DashboardAgent validates plan visuals against the dataset schema, falling
// back to auto-detected charts, and renders a single HTML page with KPI
// cards, Plotly charts and a preview table. The page loads Plotly from its
// CDN and embeds the preview records as JSON.
//
// Usage:
//
//	pipeline := services.NewPipeline(
//	    services.NewExecutor(runner, st.Snapshots(), st.Catalog(), cfg),
//	    services.NewInsightAgent(),
//	    services.NewDashboardAgent(),
//	)
//	result, err := pipeline.Run(ctx, models.QueryRequest{SQL: "SELECT ..."})
//
// # SnapshotService
//
// SnapshotService lists, deletes and clears cached snapshots together with
// their catalog views.
//
// # Thread Safety
//
// InsightAgent, DashboardAgent and Pipeline are stateless. Executor is safe
// for concurrent use as long as its runner and stores are; two concurrent
// misses on the same key both execute and the last snapshot write wins.
package services
