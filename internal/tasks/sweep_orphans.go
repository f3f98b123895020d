package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// OrphanCommentSweeper deletes comments whose title or author is gone.
type OrphanCommentSweeper interface {
	DeleteOrphanComments() (int64, error)
}

// SweepOrphanCommentsTask removes comments left behind by per-table
// truncation or by writes that bypassed the catalog.
type SweepOrphanCommentsTask struct {
	Reason string `json:"reason,omitempty"`
}

// Config returns the queue configuration for sweep tasks.
func (t SweepOrphanCommentsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_orphan_comments",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SweepOrphanCommentsProcessor creates a processor function for SweepOrphanCommentsTask.
func SweepOrphanCommentsProcessor(sweeper OrphanCommentSweeper, log *zap.Logger) backlite.QueueProcessor[SweepOrphanCommentsTask] {
	return func(ctx context.Context, task SweepOrphanCommentsTask) error {
		if sweeper == nil {
			return fmt.Errorf("orphan comment sweeper not configured")
		}

		deleted, err := sweeper.DeleteOrphanComments()
		if err != nil {
			return fmt.Errorf("sweep orphan comments: %w", err)
		}

		log.Info("Swept orphan comments",
			zap.Int64("deleted", deleted),
			zap.String("reason", task.Reason),
		)
		return nil
	}
}

// NewSweepOrphanCommentsQueue creates a backlite queue for sweep tasks.
func NewSweepOrphanCommentsQueue(sweeper OrphanCommentSweeper, log *zap.Logger) backlite.Queue {
	return backlite.NewQueue(SweepOrphanCommentsProcessor(sweeper, log))
}
