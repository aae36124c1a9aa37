package v1

import (
	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/services"
)

// ToModel converts the request into a pipeline request. Parameter values are
// normalized so JSON numbers and strings key the cache like CLI input does.
func (r PipelineRequest) ToModel() models.QueryRequest {
	req := models.QueryRequest{SQL: r.SQL}

	if len(r.Params) > 0 {
		req.Params = make(map[string]any, len(r.Params))
		for k, v := range r.Params {
			req.Params[k] = models.NormalizeValue(v)
		}
	}
	if r.Plan != nil {
		req.Plan = models.PlanFromMap(r.Plan)
	}

	return req
}

// NewPipelineResponse converts a pipeline result. The dashboard is included
// only when withDashboard is set.
func NewPipelineResponse(result *models.PipelineResult, withDashboard bool) PipelineResponse {
	resp := PipelineResponse{
		Execution: result.Execution,
		Insights:  result.Insights,
	}
	if withDashboard {
		resp.Dashboard = &Dashboard{
			Meta: result.Dashboard.Meta,
			HTML: result.Dashboard.HTML,
		}
	}
	return resp
}

// NewSnapshotFromModel converts a models.SnapshotEntry to an API Snapshot.
func NewSnapshotFromModel(e models.SnapshotEntry) Snapshot {
	return Snapshot{
		Name:         e.Name,
		Path:         e.Path,
		RegisteredAt: e.RegisteredAt,
	}
}

// NewSnapshotPreview converts a loaded snapshot, keeping its first limit rows.
func NewSnapshotPreview(d *services.SnapshotDetail, limit int) SnapshotPreview {
	return SnapshotPreview{
		Key:        d.Key,
		Path:       d.Path,
		Registered: d.Entry != nil,
		Rows:       d.Dataset.NumRows(),
		Columns:    d.Dataset.Columns,
		Preview:    d.Dataset.Records(limit),
	}
}

// ToServiceParams converts the query parameters to service list params for
// the given page.
func (p GetSnapshotsParams) ToServiceParams(page, pageSize int) services.SnapshotListParams {
	params := services.SnapshotListParams{
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}
	if p.Prefix != nil {
		params.Prefix = *p.Prefix
	}
	if p.Sort != nil && *p.Sort == SnapshotSortNewest {
		params.NewestFirst = true
	}
	return params
}
