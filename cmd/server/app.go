package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/phrazzld/taskboard/internal/web"
	"github.com/phrazzld/taskboard/internal/worker"
)

// application holds all initialized dependencies.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	taskStore   store.TaskStore
	taskService service.TaskService
	renderer    *web.Renderer
	writer      *worker.Pool
	closeStore  func() error
}

// newApplication creates the store, the services and the renderer.
// The store connection is attempted in the background; newApplication
// never waits for it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	taskStore, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		taskStore:  taskStore,
		closeStore: closeStore,
	}

	var opts []service.Option
	if cfg.Writes.Detached {
		app.writer = worker.NewPool(worker.PoolConfig{
			WorkerCount: cfg.Writes.Workers,
			QueueSize:   cfg.Writes.QueueSize,
		}, logger)
		app.writer.Start()
		opts = append(opts, service.WithDetachedWrites(app.writer))
	}

	app.taskService, err = service.NewTaskService(taskStore, logger, opts...)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.renderer, err = web.NewRenderer()
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return app, nil
}

// cleanup drains pending background writes and releases the store client.
func (app *application) cleanup() {
	if app.writer != nil {
		app.writer.Stop()
	}
	if app.closeStore != nil {
		if err := app.closeStore(); err != nil {
			app.logger.Error("failed to close store",
				slog.String("error", redact.Error(err)))
		}
	}
}
