package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/21f1001434/Agentic-AI/api/v1"
)

const (
	defaultPageSize     = 20
	maxPageSize         = 100
	defaultPreviewLimit = 20
	maxPreviewLimit     = 500
)

// GetSnapshots returns the registered snapshots with pagination
// (GET /snapshots)
func (h *Handler) GetSnapshots(c *gin.Context, params v1.GetSnapshotsParams) {
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	result, err := h.snapshotSrv.List(c.Request.Context(), params.ToServiceParams(page, pageSize))
	if err != nil {
		h.fail(c, "failed to list snapshots", err)
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	snapshots := make([]v1.Snapshot, 0, len(result.Snapshots))
	for _, e := range result.Snapshots {
		snapshots = append(snapshots, v1.NewSnapshotFromModel(e))
	}

	c.JSON(http.StatusOK, v1.SnapshotListResponse{
		Page:         page,
		PageCount:    pageCount,
		Total:        result.Total,
		Snapshots:    snapshots,
		Unregistered: result.Unregistered,
	})
}

// GetSnapshot returns the columns and first rows of one snapshot
// (GET /snapshots/{key})
func (h *Handler) GetSnapshot(c *gin.Context, key string, params v1.GetSnapshotParams) {
	limit := defaultPreviewLimit
	if params.Limit != nil && *params.Limit > 0 {
		limit = min(*params.Limit, maxPreviewLimit)
	}

	detail, err := h.snapshotSrv.Get(c.Request.Context(), key)
	if err != nil {
		h.fail(c, "failed to load snapshot", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewSnapshotPreview(detail, limit))
}

// DeleteSnapshot removes one snapshot and its catalog view
// (DELETE /snapshots/{key})
func (h *Handler) DeleteSnapshot(c *gin.Context, key string) {
	if err := h.snapshotSrv.Delete(c.Request.Context(), key); err != nil {
		h.fail(c, "failed to delete snapshot", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearSnapshots removes every snapshot
// (DELETE /snapshots)
func (h *Handler) ClearSnapshots(c *gin.Context) {
	removed, err := h.snapshotSrv.Clear(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to clear snapshots", err)
		return
	}
	c.JSON(http.StatusOK, v1.ClearSnapshotsResponse{Removed: removed})
}
