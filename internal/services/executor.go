package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/util"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
)

// Runner executes a query against the source database.
type Runner interface {
	Execute(ctx context.Context, query string, params map[string]any, timeout time.Duration, maxRows int) (*models.Dataset, error)
}

// SnapshotCache stores query results by cache key.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*models.Dataset, bool)
	Put(ctx context.Context, key string, ds *models.Dataset) (string, error)
	PathFor(key string) string
}

// Catalog makes a snapshot queryable under a name.
type Catalog interface {
	Register(ctx context.Context, name, path string) error
}

type ExecutorConfig struct {
	Timeout     time.Duration
	MaxRows     int
	OfflineOnly bool
}

// Executor answers queries from the snapshot cache and falls back to the
// runner on a miss. Every result it returns is cached and registered.
type Executor struct {
	runner  Runner
	cache   SnapshotCache
	catalog Catalog
	cfg     ExecutorConfig
	log     *zap.SugaredLogger
}

// NewExecutor builds an executor. runner may be nil when cfg.OfflineOnly is set.
func NewExecutor(runner Runner, cache SnapshotCache, catalog Catalog, cfg ExecutorConfig) *Executor {
	return &Executor{
		runner:  runner,
		cache:   cache,
		catalog: catalog,
		cfg:     cfg,
		log:     zap.S().Named("executor"),
	}
}

// Run returns the result of query. Runner errors are returned unchanged; cache
// and catalog failures are logged and do not fail the run.
func (e *Executor) Run(ctx context.Context, query string, params map[string]any) (*models.Dataset, models.ExecMeta, error) {
	start := time.Now()
	key := models.CacheKey(query, params)

	if ds, ok := e.cache.Get(ctx, key); ok {
		e.register(ctx, key, e.cache.PathFor(key))
		meta := e.meta(key, true, ds, start)
		e.log.Infow("served from cache", "cache_key", key, "rows", meta.Rows, "seconds", meta.Seconds)
		return ds, meta, nil
	}

	if e.cfg.OfflineOnly {
		return nil, models.ExecMeta{}, srvErrors.NewOfflineCacheMissError(key)
	}
	if e.runner == nil {
		return nil, models.ExecMeta{}, srvErrors.NewConfigurationError("no query runner configured")
	}

	ds, err := e.runner.Execute(ctx, query, params, e.cfg.Timeout, e.cfg.MaxRows)
	if err != nil {
		return nil, models.ExecMeta{}, err
	}

	if path, err := e.cache.Put(ctx, key, ds); err != nil {
		e.log.Warnw("failed to write snapshot", "cache_key", key, "error", err)
	} else {
		e.register(ctx, key, path)
	}

	meta := e.meta(key, false, ds, start)
	e.log.Infow("executed query", "cache_key", key, "rows", meta.Rows, "seconds", meta.Seconds)
	return ds, meta, nil
}

func (e *Executor) register(ctx context.Context, key, path string) {
	if e.catalog == nil {
		return
	}
	if err := e.catalog.Register(ctx, key, path); err != nil {
		e.log.Warnw("failed to register snapshot", "cache_key", key, "path", path, "error", err)
	}
}

func (e *Executor) meta(key string, hit bool, ds *models.Dataset, start time.Time) models.ExecMeta {
	mode := models.ExecModeDB
	if hit {
		mode = models.ExecModeCache
	}
	return models.ExecMeta{
		CacheKey: key,
		CacheHit: hit,
		Rows:     ds.NumRows(),
		Seconds:  util.RoundTo(time.Since(start).Seconds(), 4),
		Mode:     mode,
	}
}
