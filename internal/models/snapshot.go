package models

import "time"

// SnapshotEntry is a snapshot registered in the analytical catalog.
type SnapshotEntry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	RegisteredAt time.Time `json:"registered_at"`
}
