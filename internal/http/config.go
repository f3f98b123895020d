package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Store CatalogStore

	// Sweeper runs orphan sweeps inline when TaskQueue is nil.
	Sweeper   tasks.OrphanCommentSweeper
	TaskQueue scheduler.Enqueuer

	Logger  *zap.Logger
	Version string
}
