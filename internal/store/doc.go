// Package store implements the local data layer of the analytics service:
// Parquet result snapshots and the DuckDB catalog that exposes them.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├────────────────────────────────┬────────────────────────────────┤
//	│         SnapshotStore          │          CatalogStore          │
//	│              ▼                 │               ▼                │
//	│   <cacheDir>/<key>.parquet     │  views + snapshot_registry     │
//	└────────────────────────────────┴────────────────────────────────┘
//	                      both backed by one DuckDB *sql.DB
//
// # Data Sources
//
// Tables created by LOCAL MIGRATIONS (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  snapshot_registry │  Registered snapshots (name, path, time)    │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// One view per registered snapshot, named after the cache key:
//
//	CREATE OR REPLACE VIEW "<key>" AS SELECT * FROM read_parquet('<path>')
//
// # SnapshotStore
//
// The snapshot path is a pure function of the key. Writes go through a
// per-connection TEMP staging table:
//
//	Put(ctx, key, ds)
//	    ├── CREATE TEMP TABLE snapshot_staging (typed columns)
//	    ├── batched INSERTs built with squirrel
//	    ├── COPY snapshot_staging TO '<path>.tmp-<uuid>' (FORMAT PARQUET)
//	    └── os.Rename → <cacheDir>/<key>.parquet
//
// Column kinds map to storage types:
//
//	┌────────────┬──────────────────────────────────────────────┐
//	│  Kind      │  Parquet column                              │
//	├────────────┼──────────────────────────────────────────────┤
//	│  numeric   │  BIGINT when every value is an integer,      │
//	│            │  DOUBLE otherwise                            │
//	│  temporal  │  TIMESTAMP (UTC)                             │
//	│  boolean   │  BOOLEAN                                     │
//	│  other     │  VARCHAR (display text)                      │
//	└────────────┴──────────────────────────────────────────────┘
//
// Get reads with read_parquet. Missing, corrupt or unreadable files are
// reported as absent, never as errors. There is no eviction: snapshots live
// until Delete or ClearAll.
//
// # CatalogStore
//
// Register is idempotent. List uses the functional options pattern:
//
//	entries, err := store.Catalog().List(ctx,
//	    store.ByNamePrefix("3f2a"),
//	    store.WithDefaultSort(),
//	    store.WithLimit(50),
//	    store.WithOffset(0),
//	)
//
// # QueryInterceptor
//
// All statements go through a QueryInterceptor that debug-logs the query,
// argument count and duration. It wraps either the *sql.DB or a pinned
// *sql.Conn (needed for TEMP tables).
package store
