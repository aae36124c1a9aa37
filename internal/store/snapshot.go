package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/util"
	"github.com/21f1001434/Agentic-AI/pkg/runner"
)

const (
	snapshotExt      = ".parquet"
	stagingTable     = "snapshot_staging"
	insertBatchRows  = 256
	snapshotDirPerms = 0o755
)

// SnapshotStore persists query results as Parquet files named after their
// cache key. DuckDB does the Parquet encoding and decoding.
type SnapshotStore struct {
	db  *sql.DB
	dir string
	log *zap.SugaredLogger
}

func NewSnapshotStore(db *sql.DB, dir string) *SnapshotStore {
	return &SnapshotStore{db: db, dir: dir, log: zap.S().Named("snapshot_store")}
}

func (s *SnapshotStore) Dir() string {
	return s.dir
}

// PathFor returns <dir>/<key>.parquet.
func (s *SnapshotStore) PathFor(key string) string {
	return filepath.Join(s.dir, key+snapshotExt)
}

// Get loads the snapshot for key. Missing, corrupt or unreadable files are
// reported as absent.
func (s *SnapshotStore) Get(ctx context.Context, key string) (*models.Dataset, bool) {
	path := s.PathFor(key)
	if _, err := os.Stat(path); err != nil {
		s.log.Debugw("snapshot not found", "key", key, "error", err)
		return nil, false
	}

	q := NewQueryInterceptor(s.db)
	rows, err := q.QueryContext(ctx, fmt.Sprintf(queryReadParquet, util.QuoteLiteral(path)))
	if err != nil {
		s.log.Debugw("snapshot unreadable", "key", key, "error", err)
		return nil, false
	}
	defer rows.Close()

	ds, err := runner.ScanSQLRows(rows, 0)
	if err != nil {
		s.log.Debugw("snapshot unreadable", "key", key, "error", err)
		return nil, false
	}
	return ds, true
}

// Put writes ds as the snapshot for key, replacing any previous file, and
// returns the snapshot path. The file is written under a temporary name and
// renamed into place.
func (s *SnapshotStore) Put(ctx context.Context, key string, ds *models.Dataset) (string, error) {
	if ds.NumCols() == 0 {
		return "", fmt.Errorf("cannot snapshot a dataset without columns")
	}
	if err := os.MkdirAll(s.dir, snapshotDirPerms); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	q := NewQueryInterceptor(conn)
	table := util.QuoteIdentifier(stagingTable)
	plans := planColumns(ds)

	if _, err := q.ExecContext(ctx, fmt.Sprintf(queryDropStaging, table)); err != nil {
		return "", fmt.Errorf("drop staging table: %w", err)
	}
	defs := make([]string, len(plans))
	for i, p := range plans {
		defs[i] = util.QuoteIdentifier(p.name) + " " + p.sqlType
	}
	if _, err := q.ExecContext(ctx, fmt.Sprintf(queryCreateStaging, table, strings.Join(defs, ", "))); err != nil {
		return "", fmt.Errorf("create staging table: %w", err)
	}
	defer func() {
		if _, err := q.ExecContext(context.WithoutCancel(ctx), fmt.Sprintf(queryDropStaging, table)); err != nil {
			s.log.Warnw("failed to drop staging table", "error", err)
		}
	}()

	if err := insertRows(ctx, q, table, plans, ds.Rows); err != nil {
		return "", err
	}

	path := s.PathFor(key)
	tmp := path + ".tmp-" + uuid.NewString()
	if _, err := q.ExecContext(ctx, fmt.Sprintf(queryCopyParquet, table, util.QuoteLiteral(tmp))); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("replace snapshot: %w", err)
	}

	s.log.Debugw("snapshot written", "key", key, "path", path, "rows", ds.NumRows())
	return path, nil
}

// Delete removes the snapshot for key and reports whether a file existed.
func (s *SnapshotStore) Delete(key string) (bool, error) {
	err := os.Remove(s.PathFor(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ClearAll removes every snapshot file in the directory and returns how many
// were removed. Files that cannot be removed are skipped.
func (s *SnapshotStore) ClearAll() (int, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+snapshotExt))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			s.log.Warnw("failed to remove snapshot", "path", p, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Keys lists the cache keys that currently have a snapshot file, sorted.
func (s *SnapshotStore) Keys() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+snapshotExt))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, strings.TrimSuffix(filepath.Base(p), snapshotExt))
	}
	return keys, nil
}

type columnPlan struct {
	name    string
	sqlType string
	convert func(any) any
}

func planColumns(ds *models.Dataset) []columnPlan {
	plans := make([]columnPlan, len(ds.Columns))
	for j, c := range ds.Columns {
		plans[j] = columnPlan{name: c.Name, sqlType: "VARCHAR", convert: toText}

		switch c.Kind {
		case models.KindNumeric:
			if allValues(ds, j, isInt64) {
				plans[j].sqlType, plans[j].convert = "BIGINT", identity
			} else if allValues(ds, j, isFloat) {
				plans[j].sqlType, plans[j].convert = "DOUBLE", toDouble
			}
		case models.KindTemporal:
			if allValues(ds, j, isTime) {
				plans[j].sqlType, plans[j].convert = "TIMESTAMP", toUTC
			}
		case models.KindBoolean:
			if allValues(ds, j, isBool) {
				plans[j].sqlType, plans[j].convert = "BOOLEAN", identity
			}
		}
	}
	return plans
}

func insertRows(ctx context.Context, q QueryInterceptor, table string, plans []columnPlan, rows [][]any) error {
	cols := make([]string, len(plans))
	for i, p := range plans {
		cols[i] = util.QuoteIdentifier(p.name)
	}

	for start := 0; start < len(rows); start += insertBatchRows {
		end := min(start+insertBatchRows, len(rows))

		builder := sq.Insert(table).Columns(cols...)
		for _, row := range rows[start:end] {
			values := make([]any, len(plans))
			for j, p := range plans {
				var v any
				if j < len(row) {
					v = row[j]
				}
				if models.IsMissing(v) {
					values[j] = nil
					continue
				}
				values[j] = p.convert(v)
			}
			builder = builder.Values(values...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert snapshot rows: %w", err)
		}
	}
	return nil
}

func allValues(ds *models.Dataset, col int, pred func(any) bool) bool {
	for _, row := range ds.Rows {
		if col >= len(row) || models.IsMissing(row[col]) {
			continue
		}
		if !pred(row[col]) {
			return false
		}
	}
	return true
}

func isInt64(v any) bool { _, ok := v.(int64); return ok }

func isFloat(v any) bool { _, ok := models.ToFloat(v); return ok }

func isTime(v any) bool { _, ok := v.(time.Time); return ok }

func isBool(v any) bool { _, ok := v.(bool); return ok }

func identity(v any) any { return v }

func toDouble(v any) any {
	f, _ := models.ToFloat(v)
	return f
}

func toUTC(v any) any {
	return v.(time.Time).UTC()
}

func toText(v any) any {
	return models.Label(v)
}
