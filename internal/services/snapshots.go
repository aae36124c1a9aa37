package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/store"
	"github.com/21f1001434/Agentic-AI/internal/util"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
)

// SnapshotService manages cached snapshots and their catalog registrations.
type SnapshotService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewSnapshotService(st *store.Store) *SnapshotService {
	return &SnapshotService{store: st, log: zap.S().Named("snapshot_service")}
}

type SnapshotListParams struct {
	Prefix      string
	NewestFirst bool
	Limit       uint64
	Offset      uint64
}

type SnapshotListResult struct {
	Snapshots []models.SnapshotEntry
	Total     int
	// Unregistered holds keys with a snapshot file but no catalog entry.
	Unregistered []string
}

func (s *SnapshotService) List(ctx context.Context, params SnapshotListParams) (*SnapshotListResult, error) {
	entries, err := s.store.Catalog().List(ctx, s.buildListOptions(params)...)
	if err != nil {
		return nil, err
	}

	// Get total count without pagination
	total, err := s.store.Catalog().Count(ctx, store.ByNamePrefix(params.Prefix))
	if err != nil {
		return nil, err
	}

	registered, err := s.store.Catalog().List(ctx, store.ByNamePrefix(params.Prefix))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(registered))
	for _, e := range registered {
		names = append(names, e.Name)
	}

	keys, err := s.store.Snapshots().Keys()
	if err != nil {
		return nil, err
	}
	unregistered := []string{}
	for _, k := range keys {
		if params.Prefix != "" && !strings.HasPrefix(k, params.Prefix) {
			continue
		}
		if !util.Contains(names, k) {
			unregistered = append(unregistered, k)
		}
	}

	return &SnapshotListResult{
		Snapshots:    entries,
		Total:        total,
		Unregistered: unregistered,
	}, nil
}

func (s *SnapshotService) buildListOptions(params SnapshotListParams) []store.ListOption {
	var opts []store.ListOption

	if params.Prefix != "" {
		opts = append(opts, store.ByNamePrefix(params.Prefix))
	}
	if params.NewestFirst {
		opts = append(opts, store.WithNewestFirst())
	} else {
		opts = append(opts, store.WithDefaultSort())
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	return opts
}

// SnapshotDetail is a loaded snapshot. Entry is nil when the file has no
// catalog registration.
type SnapshotDetail struct {
	Key     string
	Path    string
	Entry   *models.SnapshotEntry
	Dataset *models.Dataset
}

// Get loads the snapshot for key together with its catalog entry.
func (s *SnapshotService) Get(ctx context.Context, key string) (*SnapshotDetail, error) {
	ds, ok := s.store.Snapshots().Get(ctx, key)
	if !ok {
		return nil, srvErrors.NewSnapshotNotFoundError(key)
	}

	detail := &SnapshotDetail{Key: key, Path: s.store.Snapshots().PathFor(key), Dataset: ds}

	entries, err := s.store.Catalog().List(ctx, store.ByNames(key))
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		detail.Entry = &entries[0]
	}
	return detail, nil
}

// Delete removes the snapshot file and its view. It fails with a not found
// error when neither existed.
func (s *SnapshotService) Delete(ctx context.Context, key string) error {
	unregistered, err := s.store.Catalog().Unregister(ctx, key)
	if err != nil {
		return err
	}
	removed, err := s.store.Snapshots().Delete(key)
	if err != nil {
		return err
	}
	if !unregistered && !removed {
		return srvErrors.NewSnapshotNotFoundError(key)
	}
	s.log.Infow("snapshot deleted", "cache_key", key, "file_removed", removed, "view_dropped", unregistered)
	return nil
}

// Clear removes every snapshot and registration and returns the number of
// files removed.
func (s *SnapshotService) Clear(ctx context.Context) (int, error) {
	views, err := s.store.Catalog().UnregisterAll(ctx)
	if err != nil {
		return 0, err
	}
	files, err := s.store.Snapshots().ClearAll()
	if err != nil {
		return 0, err
	}
	s.log.Infow("snapshot cache cleared", "files", files, "views", views)
	return files, nil
}
