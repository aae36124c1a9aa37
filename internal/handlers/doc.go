// Package handlers implements the HTTP API layer of the analytics service.
//
// Handlers validate requests, delegate to the services layer and map service
// errors to HTTP status codes. Pipeline runs go through a bounded
// scheduler.Scheduler so at most NumWorkers queries execute at once.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                  │                              │
//	                  ▼                              ▼
//	┌──────────────────────────────┐   ┌──────────────────────────────┐
//	│ Scheduler ──► Pipeline       │   │ SnapshotService              │
//	└──────────────────────────────┘   └──────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is mounted with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
//	┌────────┬──────────────────────┬────────────────────────────────────────┐
//	│ Method │ Endpoint             │ Description                            │
//	├────────┼──────────────────────┼────────────────────────────────────────┤
//	│ POST   │ /dashboards          │ Run query, insights and dashboard      │
//	│ POST   │ /insights            │ Run query and insights only            │
//	│ GET    │ /snapshots           │ List registered snapshots (paginated)  │
//	│ GET    │ /snapshots/{key}     │ Columns and first rows of a snapshot   │
//	│ DELETE │ /snapshots           │ Remove every snapshot and view         │
//	│ DELETE │ /snapshots/{key}     │ Remove one snapshot and its view       │
//	└────────┴──────────────────────┴────────────────────────────────────────┘
//
// Pipeline request:
//
//	{
//	    "sql": "SELECT day, region, amount FROM sales WHERE region = :region",
//	    "params": {"region": "emea"},
//	    "plan": {
//	        "metrics": [{"name": "Revenue", "agg": "sum", "field": "amount"}],
//	        "visuals": [{"type": "bar", "x": "region", "y": "amount", "aggregate": "sum"}]
//	    }
//	}
//
// Pipeline response:
//
//	{
//	    "execution": {"cache_key": "...", "cache_hit": false, "rows": 10, "seconds": 0.0132, "mode": "db"},
//	    "insights": {"kpis": [...], "summary": "...", "distributions": [...], ...},
//	    "dashboard": {"meta": {...}, "html": "<!doctype html>..."}
//	}
//
// GET /snapshots accepts prefix, sort (name|newest), page and page_size
// (default 20, max 100). GET /snapshots/{key} accepts limit (default 20,
// max 500).
//
// # Error Mapping
//
//	┌──────────────────────────────┬────────┐
//	│ Error                        │ Status │
//	├──────────────────────────────┼────────┤
//	│ invalid body / query         │ 400    │
//	│ ResourceNotFoundError        │ 404    │
//	│ ConfigurationError (offline) │ 412    │
//	│ RowLimitExceededError        │ 422    │
//	│ canceled                     │ 503    │
//	│ deadline exceeded            │ 504    │
//	│ anything else                │ 500    │
//	└──────────────────────────────┴────────┘
package handlers
