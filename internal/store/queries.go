package store

// Snapshot registry queries
const (
	queryUpsertRegistry = `
		INSERT INTO snapshot_registry (name, path, registered_at)
		VALUES (?, ?, now())
		ON CONFLICT (name) DO UPDATE SET
			path = EXCLUDED.path,
			registered_at = now()`

	queryDeleteRegistry = `DELETE FROM snapshot_registry WHERE name = ?`
)

// Snapshot file queries
const (
	queryReadParquet   = `SELECT * FROM read_parquet(%s)`
	queryCreateView    = `CREATE OR REPLACE VIEW %s AS SELECT * FROM read_parquet(%s)`
	queryDropView      = `DROP VIEW IF EXISTS %s`
	queryCreateStaging = `CREATE TEMP TABLE %s (%s)`
	queryDropStaging   = `DROP TABLE IF EXISTS %s`
	queryCopyParquet   = `COPY %s TO %s (FORMAT PARQUET)`
)
