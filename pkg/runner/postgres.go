package runner

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/models"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
)

// PostgresRunner executes queries on a pgx connection pool.
type PostgresRunner struct {
	pool *pgxpool.Pool
}

func NewPostgresRunner(ctx context.Context, dsn string) (*PostgresRunner, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	return &PostgresRunner{pool: pool}, nil
}

// Ping verifies that the pool can reach the server.
func (r *PostgresRunner) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRunner) Execute(ctx context.Context, query string, params map[string]any, timeout time.Duration, maxRows int) (*models.Dataset, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	bound, names := bindNamed(query, params, "@")
	var args []any
	if len(names) > 0 {
		named := pgx.NamedArgs{}
		for _, name := range names {
			named[name] = params[name]
		}
		args = append(args, named)
	}

	zap.S().Named("runner").Debugw("executing postgres query", "query", bound, "params", len(names))

	rows, err := r.pool.Query(ctx, bound, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	typeMap := rows.Conn().TypeMap()
	cols := make([]models.Column, len(fds))
	for i, fd := range fds {
		kind := models.KindString
		if t, ok := typeMap.TypeForOID(fd.DataTypeOID); ok {
			kind = models.KindFromDatabaseType(t.Name)
		}
		cols[i] = models.Column{Name: fd.Name, Kind: kind}
	}

	var out [][]any
	for rows.Next() {
		if maxRows > 0 && len(out) >= maxRows {
			return nil, srvErrors.NewRowLimitExceededError(maxRows)
		}
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			vals[i] = normalizePgValue(v)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewTypedDataset(cols, out), nil
}

func (r *PostgresRunner) Close() error {
	r.pool.Close()
	return nil
}

func normalizePgValue(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid || x.NaN {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(x).String()
	case *big.Int:
		if x == nil {
			return nil
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case pgtype.Interval:
		if !x.Valid {
			return nil
		}
		return formatInterval(x.Months, x.Days, x.Microseconds)
	default:
		return models.NormalizeValue(v)
	}
}
