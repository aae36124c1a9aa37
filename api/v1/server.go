package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerInterface is implemented by the HTTP handlers.
type ServerInterface interface {
	// (POST /dashboards)
	CreateDashboard(c *gin.Context)
	// (POST /insights)
	CreateInsights(c *gin.Context)
	// (GET /snapshots)
	GetSnapshots(c *gin.Context, params GetSnapshotsParams)
	// (GET /snapshots/{key})
	GetSnapshot(c *gin.Context, key string, params GetSnapshotParams)
	// (DELETE /snapshots)
	ClearSnapshots(c *gin.Context)
	// (DELETE /snapshots/{key})
	DeleteSnapshot(c *gin.Context, key string)
}

type serverInterfaceWrapper struct {
	handler ServerInterface
}

func (w *serverInterfaceWrapper) GetSnapshots(c *gin.Context) {
	var params GetSnapshotsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters: " + err.Error()})
		return
	}
	w.handler.GetSnapshots(c, params)
}

func (w *serverInterfaceWrapper) GetSnapshot(c *gin.Context) {
	var params GetSnapshotParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters: " + err.Error()})
		return
	}
	w.handler.GetSnapshot(c, c.Param("key"), params)
}

func (w *serverInterfaceWrapper) DeleteSnapshot(c *gin.Context) {
	w.handler.DeleteSnapshot(c, c.Param("key"))
}

// RegisterHandlers mounts every API route on router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	w := &serverInterfaceWrapper{handler: si}

	router.POST("/dashboards", si.CreateDashboard)
	router.POST("/insights", si.CreateInsights)
	router.GET("/snapshots", w.GetSnapshots)
	router.GET("/snapshots/:key", w.GetSnapshot)
	router.DELETE("/snapshots", si.ClearSnapshots)
	router.DELETE("/snapshots/:key", w.DeleteSnapshot)
}
