// Package config defines the configuration structure for the analytics service.
//
// Configuration is organized into logical sections (Cache, Catalog, Query, Server).
// Defaults come from `default` struct tags applied with creasty/defaults; values
// set through flags or ANALYTICS_* environment variables are layered on top by Load.
//
// # Configuration Structure
//
//	Configuration
//	├── Cache          - Parquet snapshot directory
//	├── Catalog        - DuckDB catalog database
//	├── Query          - Source database and execution limits
//	├── Server         - HTTP server settings
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Cache Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ Dir              │ "cache" │ Directory holding <key>.parquet files  │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Catalog Configuration
//
//	┌──────────────────┬────────────────────┬──────────────────────────────┐
//	│ Field            │ Default            │ Description                  │
//	├──────────────────┼────────────────────┼──────────────────────────────┤
//	│ DuckDBPath       │ "analytics.duckdb" │ Catalog file, ":memory:" ok  │
//	└──────────────────┴────────────────────┴──────────────────────────────┘
//
// # Query Configuration
//
//	┌─────────────────┬──────────┬─────────────────────────────────────────┐
//	│ Field           │ Default  │ Description                             │
//	├─────────────────┼──────────┼─────────────────────────────────────────┤
//	│ Driver          │ "duckdb" │ "postgres" or "duckdb"                  │
//	│ DSN             │ ""       │ Connection string (hidden in logs)      │
//	│ TimeoutSeconds  │ 30       │ Per-query timeout                       │
//	│ MaxRows         │ 200000   │ Result size limit                       │
//	│ OfflineOnly     │ false    │ Serve from snapshots only               │
//	└─────────────────┴──────────┴─────────────────────────────────────────┘
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ NumWorkers       │ 3       │ Number of scheduler workers            │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Debug Logging
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
//
// The DSN carries credentials and is masked by DebugMap.
package config
