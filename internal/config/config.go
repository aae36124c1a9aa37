package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverDuckDB   = "duckdb"
)

type Configuration struct {
	Cache     Cache
	Catalog   Catalog
	Query     Query
	Server    Server
	LogFormat string `default:"console" debugmap:"visible"`
	LogLevel  string `default:"info" debugmap:"visible"`
}

type Cache struct {
	Dir string `default:"cache" debugmap:"visible"`
}

type Catalog struct {
	DuckDBPath string `default:"analytics.duckdb" debugmap:"visible"`
}

type Query struct {
	Driver         string `default:"duckdb" debugmap:"visible"`
	DSN            string `debugmap:"hidden"`
	TimeoutSeconds int    `default:"30" debugmap:"visible"`
	MaxRows        int    `default:"200000" debugmap:"visible"`
	OfflineOnly    bool   `default:"false" debugmap:"visible"`
}

func (q Query) Timeout() time.Duration {
	return time.Duration(q.TimeoutSeconds) * time.Second
}

type Server struct {
	ServerMode string `default:"dev" debugmap:"visible"`
	HTTPPort   int    `default:"8000" debugmap:"visible"`
	NumWorkers int    `default:"3" debugmap:"visible"`
}

// NewConfigurationWithDefaults returns a configuration with every default applied.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	defaults.MustSet(cfg)
	return cfg
}

// Load builds the configuration from defaults overridden by every key set in v.
// Keys are the flag names registered by the CLI, e.g. "cache-dir".
func Load(v *viper.Viper) (*Configuration, error) {
	cfg := NewConfigurationWithDefaults()

	if v.IsSet("cache-dir") {
		cfg.Cache.Dir = v.GetString("cache-dir")
	}
	if v.IsSet("catalog-path") {
		cfg.Catalog.DuckDBPath = v.GetString("catalog-path")
	}
	if v.IsSet("query-driver") {
		cfg.Query.Driver = strings.ToLower(v.GetString("query-driver"))
	}
	if v.IsSet("query-dsn") {
		cfg.Query.DSN = v.GetString("query-dsn")
	}
	if v.IsSet("query-timeout") {
		cfg.Query.TimeoutSeconds = v.GetInt("query-timeout")
	}
	if v.IsSet("max-rows") {
		cfg.Query.MaxRows = v.GetInt("max-rows")
	}
	if v.IsSet("offline-only") {
		cfg.Query.OfflineOnly = v.GetBool("offline-only")
	}
	if v.IsSet("server-mode") {
		cfg.Server.ServerMode = v.GetString("server-mode")
	}
	if v.IsSet("http-port") {
		cfg.Server.HTTPPort = v.GetInt("http-port")
	}
	if v.IsSet("num-workers") {
		cfg.Server.NumWorkers = v.GetInt("num-workers")
	}
	if v.IsSet("log-format") {
		cfg.LogFormat = v.GetString("log-format")
	}
	if v.IsSet("log-level") {
		cfg.LogLevel = v.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	switch c.Query.Driver {
	case DriverPostgres, DriverDuckDB:
	default:
		return fmt.Errorf("invalid query driver %q: must be '%s' or '%s'", c.Query.Driver, DriverPostgres, DriverDuckDB)
	}
	if c.Query.TimeoutSeconds <= 0 {
		return fmt.Errorf("query timeout must be positive, got %d", c.Query.TimeoutSeconds)
	}
	if c.Query.MaxRows <= 0 {
		return fmt.Errorf("max rows must be positive, got %d", c.Query.MaxRows)
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("cache dir is empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.LogFormat)
	}
	return nil
}

// DebugMap returns the configuration as a map suitable for logging. Fields
// tagged debugmap:"hidden" are masked.
func (c *Configuration) DebugMap() map[string]any {
	dsn := ""
	if c.Query.DSN != "" {
		dsn = "(hidden)"
	}
	return map[string]any{
		"cache.dir":            c.Cache.Dir,
		"catalog.duckdb_path":  c.Catalog.DuckDBPath,
		"query.driver":         c.Query.Driver,
		"query.dsn":            dsn,
		"query.timeoutSeconds": c.Query.TimeoutSeconds,
		"query.maxRows":        c.Query.MaxRows,
		"query.offlineOnly":    c.Query.OfflineOnly,
		"server.mode":          c.Server.ServerMode,
		"server.httpPort":      c.Server.HTTPPort,
		"server.numWorkers":    c.Server.NumWorkers,
		"logFormat":            c.LogFormat,
		"logLevel":             c.LogLevel,
	}
}
