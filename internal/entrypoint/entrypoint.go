package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// OpenDatabase opens the catalog database described by cfg.
func OpenDatabase(cfg *config.Config, log *zap.Logger) (*database.Database, error) {
	level, err := database.ParseSQLLogLevel(cfg.Database.SQLLogLevel)
	if err != nil {
		return nil, err
	}
	return database.NewDatabase(cfg.Database.Path,
		database.WithLogger(log.Named("database")),
		database.WithSQLLogLevel(level),
	)
}

func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var listenErr error
	select {
	case <-quit:
		log.Info("Shutting down server", zap.Duration("timeout", timeout))
	case listenErr = <-serveErr:
		log.Error("Server failed, stopping background work", zap.Error(listenErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so no sweep outlives the database
	if onShutdown != nil {
		onShutdown(ctx)
	}
	if listenErr != nil {
		return fmt.Errorf("listen: %w", listenErr)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

func Run(cfg *config.Config, log *zap.Logger, version string) error {
	log.Info("Starting catalog", zap.String("version", version))

	db, err := OpenDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// Initialize task queue if enabled
	var (
		taskClient    *tasks.Client
		taskQueue     scheduler.Enqueuer
		taskCtxCancel context.CancelFunc
	)
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
			Path:            cfg.Tasks.Path,
		}
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, log.Named("tasks"))
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(tasks.NewSweepOrphanCommentsQueue(db, log.Named("tasks")))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
		taskQueue = taskClient
	}

	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenanceScheduler(cfg.Maintenance.Schedule, taskQueue, db, log.Named("maintenance"))
		if err := maintenance.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start maintenance scheduler: %w", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:     db,
		Sweeper:   db,
		TaskQueue: taskQueue,
		Logger:    log,
		Version:   version,
	})

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, log, onShutdown)
}
