package store

import (
	"context"
	"database/sql"

	"github.com/21f1001434/Agentic-AI/internal/store/migrations"
)

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	snapshots *SnapshotStore
	catalog   *CatalogStore
}

func NewStore(db *sql.DB, cacheDir string) *Store {
	return &Store{
		db:        db,
		snapshots: NewSnapshotStore(db, cacheDir),
		catalog:   NewCatalogStore(NewQueryInterceptor(db)),
	}
}

// Migrate creates the local tables (snapshot_registry).
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Snapshots() *SnapshotStore {
	return s.snapshots
}

func (s *Store) Catalog() *CatalogStore {
	return s.catalog
}

func (s *Store) Close() error {
	return s.db.Close()
}
