package runner

import (
	"context"
	"time"

	"github.com/21f1001434/Agentic-AI/internal/models"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
)

const (
	DriverPostgres = "postgres"
	DriverDuckDB   = "duckdb"
)

// Runner executes one read-only query and returns its result as a Dataset.
// Implementations enforce timeout and maxRows; a maxRows <= 0 disables the limit.
type Runner interface {
	Execute(ctx context.Context, query string, params map[string]any, timeout time.Duration, maxRows int) (*models.Dataset, error)
	Close() error
}

// New opens a runner for the given driver.
func New(ctx context.Context, driver, dsn string) (Runner, error) {
	switch driver {
	case DriverPostgres:
		r, err := NewPostgresRunner(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverDuckDB:
		r, err := NewDuckDBRunner(dsn)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, srvErrors.NewUnsupportedDriverError(driver)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
