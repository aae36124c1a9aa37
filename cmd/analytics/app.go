package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/config"
	"github.com/21f1001434/Agentic-AI/internal/services"
	"github.com/21f1001434/Agentic-AI/internal/store"
	"github.com/21f1001434/Agentic-AI/pkg/runner"
)

const connectTimeout = 30 * time.Second

// app holds the resources shared by the commands.
type app struct {
	cfg    *config.Configuration
	store  *store.Store
	runner runner.Runner
}

// openStore opens the catalog database and applies migrations.
func openStore(ctx context.Context, cfg *config.Configuration) (*store.Store, error) {
	db, err := store.NewDB(cfg.Catalog.DuckDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", cfg.Catalog.DuckDBPath, err)
	}
	st := store.NewStore(db, cfg.Cache.Dir)
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return st, nil
}

// newApp opens the store and, unless offline-only mode is enabled, the
// query runner.
func newApp(ctx context.Context, cfg *config.Configuration) (*app, error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: st}
	if cfg.Query.OfflineOnly {
		zap.S().Named("main").Infow("offline-only mode, no query runner opened")
		return a, nil
	}

	r, err := connectRunner(ctx, cfg.Query.Driver, cfg.Query.DSN)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	a.runner = r
	return a, nil
}

// connectRunner opens the runner and, for postgres, waits with exponential
// backoff until the server answers. Queries themselves are never retried.
func connectRunner(ctx context.Context, driver, dsn string) (runner.Runner, error) {
	r, err := runner.New(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	pg, ok := r.(*runner.PostgresRunner)
	if !ok {
		return r, nil
	}

	log := zap.S().Named("main")
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pg.Ping(pingCtx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return struct{}{}, backoff.Permanent(err)
			}
			log.Warnw("postgres not reachable yet", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(connectTimeout),
	)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return r, nil
}

func (a *app) pipeline() *services.Pipeline {
	executor := services.NewExecutor(a.runner, a.store.Snapshots(), a.store.Catalog(), services.ExecutorConfig{
		Timeout:     a.cfg.Query.Timeout(),
		MaxRows:     a.cfg.Query.MaxRows,
		OfflineOnly: a.cfg.Query.OfflineOnly,
	})
	return services.NewPipeline(executor, services.NewInsightAgent(), services.NewDashboardAgent())
}

func (a *app) Close() error {
	var errs []error
	if a.runner != nil {
		errs = append(errs, a.runner.Close())
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}
