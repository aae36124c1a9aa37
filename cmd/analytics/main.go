package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/config"
)

const envPrefix = "ANALYTICS"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Configuration

	rootCmd := &cobra.Command{
		Use:           "analytics",
		Short:         "Cache-aware SQL analytics with insights and dashboards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentPreRunE = cobrautil.CommandStack(
		cobrautil.SyncViperPreRunE(envPrefix),
		func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			*cfg = *loaded
			return setupLogging(cfg)
		},
	)

	cfg = config.NewConfigurationWithDefaults()
	registerFlags(rootCmd.PersistentFlags(), cfg)

	rootCmd.AddCommand(
		newRunCmd(cfg),
		newServeCmd(cfg),
		newCacheCmd(cfg),
	)

	return rootCmd
}

func registerFlags(f *pflag.FlagSet, defaults *config.Configuration) {
	f.String("config", "", "path to a configuration file (yaml, json or toml)")
	f.String("cache-dir", defaults.Cache.Dir, "directory holding parquet snapshots")
	f.String("catalog-path", defaults.Catalog.DuckDBPath, "duckdb database used as the snapshot catalog")
	f.String("query-driver", defaults.Query.Driver, "source database driver (postgres|duckdb)")
	f.String("query-dsn", defaults.Query.DSN, "source database connection string")
	f.Int("query-timeout", defaults.Query.TimeoutSeconds, "query timeout in seconds")
	f.Int("max-rows", defaults.Query.MaxRows, "maximum number of rows a query may return")
	f.Bool("offline-only", defaults.Query.OfflineOnly, "serve from the snapshot cache only")
	f.String("server-mode", defaults.Server.ServerMode, "server mode (dev|prod)")
	f.Int("http-port", defaults.Server.HTTPPort, "http port")
	f.Int("num-workers", defaults.Server.NumWorkers, "number of concurrent pipeline runs")
	f.String("log-format", defaults.LogFormat, "log format (console|json)")
	f.String("log-level", defaults.LogLevel, "log level")
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return config.Load(v)
}

func setupLogging(cfg *config.Configuration) error {
	logger, err := config.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	zap.S().Named("main").Debugw("configuration loaded", "config", cfg.DebugMap())
	return nil
}
