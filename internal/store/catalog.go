package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/util"
)

// CatalogStore exposes snapshots as DuckDB views so they can be queried ad hoc,
// and records every registration in snapshot_registry.
type CatalogStore struct {
	db QueryInterceptor
}

func NewCatalogStore(db QueryInterceptor) *CatalogStore {
	return &CatalogStore{db: db}
}

// Register creates or replaces the view name over the Parquet file at path.
func (s *CatalogStore) Register(ctx context.Context, name, path string) error {
	view := fmt.Sprintf(queryCreateView, util.QuoteIdentifier(name), util.QuoteLiteral(path))
	if _, err := s.db.ExecContext(ctx, view); err != nil {
		return fmt.Errorf("create view %s: %w", name, err)
	}
	if _, err := s.db.ExecContext(ctx, queryUpsertRegistry, name, path); err != nil {
		return fmt.Errorf("record registration %s: %w", name, err)
	}
	return nil
}

// Unregister drops the view and its registry row. It reports whether the
// snapshot was registered.
func (s *CatalogStore) Unregister(ctx context.Context, name string) (bool, error) {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(queryDropView, util.QuoteIdentifier(name))); err != nil {
		return false, fmt.Errorf("drop view %s: %w", name, err)
	}
	res, err := s.db.ExecContext(ctx, queryDeleteRegistry, name)
	if err != nil {
		return false, fmt.Errorf("delete registration %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UnregisterAll drops every registered view and returns how many were removed.
func (s *CatalogStore) UnregisterAll(ctx context.Context) (int, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		ok, err := s.Unregister(ctx, e.Name)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

func (s *CatalogStore) List(ctx context.Context, opts ...ListOption) ([]models.SnapshotEntry, error) {
	builder := sq.Select("name", "path", "registered_at").From("snapshot_registry")

	if len(opts) == 0 {
		opts = []ListOption{WithDefaultSort()}
	}
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.SnapshotEntry{}
	for rows.Next() {
		var e models.SnapshotEntry
		if err := rows.Scan(&e.Name, &e.Path, &e.RegisteredAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *CatalogStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("snapshot_registry")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByNamePrefix(prefix string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if prefix == "" {
			return b
		}
		return b.Where(sq.Expr("starts_with(name, ?)", prefix))
	}
}

func ByNames(names ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(names) == 0 {
			return b
		}
		return b.Where(sq.Eq{"name": names})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("name")
	}
}

// WithNewestFirst orders by registration time, newest first, name as tie-breaker.
func WithNewestFirst() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("registered_at DESC", "name")
	}
}
