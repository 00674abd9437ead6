package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/phrazzld/taskboard/internal/worker"
)

// JobTypeCreateTask labels detached task writes in worker logs.
const JobTypeCreateTask = "create_task"

// TaskService provides the task operations used by the HTTP layer.
type TaskService interface {
	// ListTasks returns every task in the store.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask creates a task holding text exactly as given.
	CreateTask(ctx context.Context, text string) (*domain.Task, error)

	// DeleteTask removes the task identified by rawID. A malformed or
	// unknown ID is not an error.
	DeleteTask(ctx context.Context, rawID string) error
}

// JobSubmitter accepts background jobs. *worker.Pool satisfies it.
type JobSubmitter interface {
	Submit(job worker.Job) error
}

// Option configures a TaskService.
type Option func(*taskServiceImpl)

// WithDetachedWrites makes CreateTask hand the write to submitter and return
// without waiting for the store.
func WithDetachedWrites(submitter JobSubmitter) Option {
	return func(s *taskServiceImpl) {
		s.writer = submitter
	}
}

type taskServiceImpl struct {
	store  store.TaskStore
	writer JobSubmitter
	logger *slog.Logger
}

// NewTaskService creates a TaskService over taskStore.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger, opts ...Option) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	s := &taskServiceImpl{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, text string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	task := domain.NewTask(text)

	if s.writer == nil {
		if err := s.store.Create(ctx, task); err != nil {
			return nil, NewTaskServiceError("create_task", "failed to create task", err)
		}
		log.Info("task created", slog.String("task_id", task.ID.String()))
		return task, nil
	}

	// The request context ends with the response; the job gets the pool's.
	job := worker.NewFunc(JobTypeCreateTask, func(jobCtx context.Context) error {
		if err := s.store.Create(jobCtx, task); err != nil {
			return fmt.Errorf("detached write of task %s: %w", task.ID, err)
		}
		s.logger.Info("task created", slog.String("task_id", task.ID.String()), slog.Bool("detached", true))
		return nil
	})
	if err := s.writer.Submit(job); err != nil {
		return nil, NewTaskServiceError("create_task", "failed to queue write",
			fmt.Errorf("%w: %w", ErrWriteRejected, err))
	}

	log.Debug("task write queued",
		slog.String("task_id", task.ID.String()),
		slog.String("job_id", job.ID().String()))
	return task, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, rawID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := domain.ParseTaskID(rawID)
	if err != nil {
		log.Debug("ignoring delete of malformed task id", slog.String("task_id", rawID))
		return nil
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("delete processed", slog.String("task_id", id.String()))
	return nil
}
