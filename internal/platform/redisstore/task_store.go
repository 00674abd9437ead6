package redisstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/redis/go-redis/v9"
)

// RedisTaskStore implements store.TaskStore on a single Redis hash.
type RedisTaskStore struct {
	client redis.Cmdable
	conn   *store.Connection
	key    string
	logger *slog.Logger
}

var _ store.TaskStore = (*RedisTaskStore)(nil)

// NewRedisTaskStore creates a store keeping its tasks in the hash named key.
// If logger is nil, a default logger will be used.
func NewRedisTaskStore(client redis.Cmdable, conn *store.Connection, key string, logger *slog.Logger) *RedisTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisTaskStore{
		client: client,
		conn:   conn,
		key:    key,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// List implements store.TaskStore. Hash iteration order is not stable.
func (s *RedisTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := s.conn.Ready(ctx); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		log.Error("failed to read tasks", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "list", "HGETALL failed", err)
	}

	tasks := make([]domain.Task, 0, len(fields))
	for field, text := range fields {
		id, err := uuid.Parse(field)
		if err != nil {
			log.Warn("skipping hash field that is not a task id", slog.String("field", field))
			continue
		}
		tasks = append(tasks, domain.Task{ID: id, Text: text})
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.
func (s *RedisTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", store.ErrInvalidEntity)
	}
	if err := s.conn.Ready(ctx); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.client.HSet(ctx, s.key, task.ID.String(), task.Text).Err(); err != nil {
		log.Error("failed to store task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "create", "HSET failed", err)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return nil
}

// DeleteByID implements store.TaskStore. HDEL of a missing field removes nothing and succeeds.
func (s *RedisTaskStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.conn.Ready(ctx); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	removed, err := s.client.HDel(ctx, s.key, id.String()).Result()
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "HDEL failed", err)
	}

	log.Debug("delete processed",
		slog.String("task_id", id.String()),
		slog.Int64("removed", removed))
	return nil
}
