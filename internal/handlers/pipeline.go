package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/21f1001434/Agentic-AI/api/v1"
	"github.com/21f1001434/Agentic-AI/internal/models"
)

// CreateDashboard runs the full pipeline
// (POST /dashboards)
func (h *Handler) CreateDashboard(c *gin.Context) {
	h.runPipeline(c, true)
}

// CreateInsights runs the pipeline without building the dashboard
// (POST /insights)
func (h *Handler) CreateInsights(c *gin.Context) {
	h.runPipeline(c, false)
}

func (h *Handler) runPipeline(c *gin.Context, withDashboard bool) {
	var body v1.PipelineRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	req := body.ToModel()

	future := h.sched.AddWork(func(ctx context.Context) (*models.PipelineResult, error) {
		if withDashboard {
			return h.pipeline.Run(ctx, req)
		}
		return h.pipeline.Insights(ctx, req)
	})
	defer future.Stop()

	res, err := future.Wait(c.Request.Context())
	if err != nil {
		h.fail(c, "pipeline request abandoned", err)
		return
	}
	if res.Err != nil {
		h.fail(c, "pipeline run failed", res.Err)
		return
	}

	c.JSON(http.StatusOK, v1.NewPipelineResponse(res.Data, withDashboard))
}
