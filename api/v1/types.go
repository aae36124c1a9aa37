package v1

import (
	"time"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

// PipelineRequest is the body of POST /api/v1/dashboards and POST /api/v1/insights.
type PipelineRequest struct {
	SQL    string         `json:"sql" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
	Plan   map[string]any `json:"plan,omitempty"`
}

type Dashboard struct {
	Meta models.DashboardMeta `json:"meta"`
	HTML string               `json:"html"`
}

type PipelineResponse struct {
	Execution models.ExecMeta      `json:"execution"`
	Insights  models.InsightReport `json:"insights"`
	Dashboard *Dashboard           `json:"dashboard,omitempty"`
}

// GetSnapshotsParams are the query parameters of GET /api/v1/snapshots.
type GetSnapshotsParams struct {
	Prefix   *string `form:"prefix"`
	Sort     *string `form:"sort"`
	Page     *int    `form:"page"`
	PageSize *int    `form:"page_size"`
}

const (
	SnapshotSortName   = "name"
	SnapshotSortNewest = "newest"
)

type Snapshot struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	RegisteredAt time.Time `json:"registered_at"`
}

type SnapshotListResponse struct {
	Page         int        `json:"page"`
	PageCount    int        `json:"page_count"`
	Total        int        `json:"total"`
	Snapshots    []Snapshot `json:"snapshots"`
	Unregistered []string   `json:"unregistered"`
}

// GetSnapshotParams are the query parameters of GET /api/v1/snapshots/{key}.
type GetSnapshotParams struct {
	Limit *int `form:"limit"`
}

// SnapshotPreview is a cached result with its first rows.
type SnapshotPreview struct {
	Key        string           `json:"key"`
	Path       string           `json:"path"`
	Registered bool             `json:"registered"`
	Rows       int              `json:"rows"`
	Columns    []models.Column  `json:"columns"`
	Preview    []map[string]any `json:"preview"`
}

type ClearSnapshotsResponse struct {
	Removed int `json:"removed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
