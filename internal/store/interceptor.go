package store

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// QueryInterceptor wraps a *sql.DB or *sql.Conn and debug-logs every statement.
type QueryInterceptor struct {
	exec sqlExecutor
	log  *zap.SugaredLogger
}

func NewQueryInterceptor(exec sqlExecutor) QueryInterceptor {
	return QueryInterceptor{exec: exec, log: zap.S().Named("store")}
}

func (q QueryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	q.log.Debugw("query row", "query", query, "args", args)
	return q.exec.QueryRowContext(ctx, query, args...)
}

func (q QueryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := q.exec.QueryContext(ctx, query, args...)
	q.log.Debugw("query", "query", query, "args", len(args), "duration", time.Since(start), "error", err)
	return rows, err
}

func (q QueryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := q.exec.ExecContext(ctx, query, args...)
	q.log.Debugw("exec", "query", query, "args", len(args), "duration", time.Since(start), "error", err)
	return res, err
}
