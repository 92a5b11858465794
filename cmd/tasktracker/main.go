package main

import (
	"context"
	"errors"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/tasktracker/internal/config"
	"github.com/fastygo/tasktracker/internal/services/lifecycle"
	"github.com/fastygo/tasktracker/pkg/logger"
	"github.com/fastygo/tasktracker/repository"
	boltRepo "github.com/fastygo/tasktracker/repository/bolt"
	memoryRepo "github.com/fastygo/tasktracker/repository/memory"
	authUC "github.com/fastygo/tasktracker/usecase/auth"
	taskUC "github.com/fastygo/tasktracker/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	var snapshots repository.SnapshotRepository
	snapshots, err = boltRepo.Open(cfg.Store.Path, cfg.Store.Bucket)
	if err != nil {
		// Durability is best-effort: fall back to memory and keep going.
		zapLogger.Warn("durable store unavailable, state will not survive restart",
			zap.String("path", cfg.Store.Path), zap.Error(err))
		snapshots = memoryRepo.New()
	}
	manager.RegisterCloser("snapshot-store", snapshots)

	tasks := taskUC.New(snapshots, logger.WithComponent(zapLogger, "tasks"))
	sessions := authUC.New(snapshots, tasks, logger.WithComponent(zapLogger, "auth"), cfg.Login.Delay)

	if err := sessions.Restore(appCtx); err != nil {
		zapLogger.Warn("session restore failed", zap.Error(err))
	}
	if err := tasks.Restore(appCtx); err != nil {
		zapLogger.Warn("task restore failed", zap.Error(err))
	}

	v := newView(sessions, tasks, os.Stdin, os.Stdout)
	if err := v.run(appCtx); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("view loop failed", zap.Error(err))
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("shutdown incomplete", zap.Error(err))
	}
}
