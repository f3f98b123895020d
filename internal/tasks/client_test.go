package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "catalog-tasks.db"), TasksDBPath(filepath.Join("data", "catalog.db")))
	assert.Equal(t, "catalog-tasks", TasksDBPath("catalog"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := NewClient(dbPath, DefaultConfig(), nil)
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestNewClient_PathAndDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	queuePath := filepath.Join(tmpDir, "queue.db")

	client, err := NewClient(filepath.Join(tmpDir, "test.db"), Config{Path: queuePath}, nil)
	require.NoError(t, err)
	defer client.Close()

	_, err = os.Stat(queuePath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, DefaultConfig().Workers, client.config.Workers)
	assert.Equal(t, DefaultConfig().ReleaseAfter, client.config.ReleaseAfter)
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

type fakeSweeper struct {
	calls   atomic.Int32
	deleted int64
	err     error
}

func (f *fakeSweeper) DeleteOrphanComments() (int64, error) {
	f.calls.Add(1)
	return f.deleted, f.err
}

func TestSweepOrphanCommentsTaskConfig(t *testing.T) {
	cfg := SweepOrphanCommentsTask{}.Config()

	assert.Equal(t, "sweep_orphan_comments", cfg.Name)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestSweepOrphanCommentsProcessor(t *testing.T) {
	sweeper := &fakeSweeper{deleted: 4}
	process := SweepOrphanCommentsProcessor(sweeper, zap.NewNop())

	require.NoError(t, process(context.Background(), SweepOrphanCommentsTask{Reason: "test"}))
	assert.Equal(t, int32(1), sweeper.calls.Load())

	sweeper.err = errors.New("database closed")
	err := process(context.Background(), SweepOrphanCommentsTask{})
	assert.ErrorContains(t, err, "database closed")

	err = SweepOrphanCommentsProcessor(nil, zap.NewNop())(context.Background(), SweepOrphanCommentsTask{})
	assert.Error(t, err)
}

func TestSweepRunsThroughQueue(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	done := make(chan struct{}, 1)
	sweeper := &fakeSweeper{}
	client.Register(backlite.NewQueue(func(ctx context.Context, task SweepOrphanCommentsTask) error {
		_, err := sweeper.DeleteOrphanComments()
		done <- struct{}{}
		return err
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.Enqueue(SweepOrphanCommentsTask{Reason: "manual"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case <-done:
		assert.Equal(t, int32(1), sweeper.calls.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("sweep task was not executed within timeout")
	}
}
