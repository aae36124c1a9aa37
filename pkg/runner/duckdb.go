package runner

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

// DuckDBRunner executes queries against a DuckDB database file.
type DuckDBRunner struct {
	db *sql.DB
}

// NewDuckDBRunner opens dsn with the duckdb driver. An empty dsn or ":memory:"
// opens an in-memory database.
func NewDuckDBRunner(dsn string) (*DuckDBRunner, error) {
	if dsn == ":memory:" {
		dsn = ""
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &DuckDBRunner{db: db}, nil
}

func (r *DuckDBRunner) Execute(ctx context.Context, query string, params map[string]any, timeout time.Duration, maxRows int) (*models.Dataset, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	bound, names := bindNamed(query, params, "$")
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, sql.Named(name, params[name]))
	}

	zap.S().Named("runner").Debugw("executing duckdb query", "query", bound, "params", len(args))

	rows, err := r.db.QueryContext(ctx, bound, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return ScanSQLRows(rows, maxRows)
}

func (r *DuckDBRunner) Close() error {
	return r.db.Close()
}
