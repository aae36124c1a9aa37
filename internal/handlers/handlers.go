package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/21f1001434/Agentic-AI/api/v1"
	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/services"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
	"github.com/21f1001434/Agentic-AI/pkg/scheduler"
)

type Handler struct {
	pipeline    *services.Pipeline
	snapshotSrv *services.SnapshotService
	sched       *scheduler.Scheduler[*models.PipelineResult]
	log         *zap.SugaredLogger
}

func New(pipeline *services.Pipeline, snapshotSrv *services.SnapshotService, sched *scheduler.Scheduler[*models.PipelineResult]) *Handler {
	return &Handler{
		pipeline:    pipeline,
		snapshotSrv: snapshotSrv,
		sched:       sched,
		log:         zap.S().Named("handler"),
	}
}

var _ v1.ServerInterface = (*Handler)(nil)

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case srvErrors.IsConfigurationError(err):
		return http.StatusPreconditionFailed
	case srvErrors.IsRowLimitExceededError(err):
		return http.StatusUnprocessableEntity
	case srvErrors.IsResourceNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorw(msg, "error", err, "status", status)
	} else {
		h.log.Warnw(msg, "error", err, "status", status)
	}
	c.JSON(status, v1.ErrorResponse{Error: err.Error()})
}
