package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/logging"
	"github.com/mrlokans/catalog/internal/tasks"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands a task to the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// MaintenanceScheduler periodically sweeps orphaned comments. With a queue
// the sweep is enqueued as a task; without one it runs inline on the cron
// goroutine.
type MaintenanceScheduler struct {
	schedule string
	queue    Enqueuer
	sweeper  tasks.OrphanCommentSweeper
	log      *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewMaintenanceScheduler creates a scheduler. queue may be nil.
func NewMaintenanceScheduler(schedule string, queue Enqueuer, sweeper tasks.OrphanCommentSweeper, log *zap.Logger) *MaintenanceScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	cronLog := cron.PrintfLogger(logging.Printf{Log: log.Named("cron").Sugar()})
	return &MaintenanceScheduler{
		schedule: schedule,
		queue:    queue,
		sweeper:  sweeper,
		log:      log,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cronLog)),
		),
	}
}

// Start registers the sweep job and starts cron. It stops on its own when
// ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Maintenance scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running sweep and stops cron.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	s.log.Info("Maintenance scheduler stopped")
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next sweep will occur
func (s *MaintenanceScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow performs one sweep, through the queue when there is one.
func (s *MaintenanceScheduler) RunNow() {
	if s.queue != nil {
		id, err := s.queue.Enqueue(tasks.SweepOrphanCommentsTask{Reason: "schedule"})
		if err != nil {
			s.log.Error("Failed to enqueue orphan sweep", zap.Error(err))
			return
		}
		s.log.Debug("Orphan sweep enqueued", zap.String("task_id", id))
		return
	}

	deleted, err := s.sweeper.DeleteOrphanComments()
	if err != nil {
		s.log.Error("Orphan sweep failed", zap.Error(err))
		return
	}
	s.log.Info("Swept orphan comments", zap.Int64("deleted", deleted))
}
