package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

type MaintenanceController struct {
	queue   scheduler.Enqueuer
	sweeper tasks.OrphanCommentSweeper
	log     *zap.Logger
}

// NewMaintenanceController creates the controller. queue may be nil, in
// which case sweeps run within the request.
func NewMaintenanceController(queue scheduler.Enqueuer, sweeper tasks.OrphanCommentSweeper, log *zap.Logger) *MaintenanceController {
	return &MaintenanceController{queue: queue, sweeper: sweeper, log: orNop(log)}
}

// SweepOrphans removes comments whose title or author no longer exists
// POST /api/maintenance/orphans
func (mc *MaintenanceController) SweepOrphans(c *gin.Context) {
	if mc.queue != nil {
		id, err := mc.queue.Enqueue(tasks.SweepOrphanCommentsTask{Reason: "api"})
		if err != nil {
			respondInternalError(c, mc.log, err, "enqueue orphan sweep")
			return
		}
		respondAccepted(c, "orphan sweep queued", gin.H{"task_id": id})
		return
	}

	deleted, err := mc.sweeper.DeleteOrphanComments()
	if err != nil {
		respondStoreError(c, mc.log, err, "sweep orphans")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "orphan comments removed", Data: gin.H{"deleted": deleted}})
}
