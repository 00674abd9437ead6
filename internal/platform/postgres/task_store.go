package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	conn   *store.Connection
	logger *slog.Logger
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller, and the connection whose outcome gates every operation.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, conn *store.Connection, logger *slog.Logger) *PostgresTaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		conn:   conn,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// List implements store.TaskStore.
// No ORDER BY is applied; rows come back in whatever order PostgreSQL yields.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := s.conn.Ready(ctx); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, text FROM tasks`)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", redact.Error(err)))
		}
	}()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Text); err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan row", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", store.ErrInvalidEntity)
	}
	if err := s.conn.Ready(ctx); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, text, created_at) VALUES ($1, $2, $3)`,
		task.ID, task.Text, time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return nil
}

// DeleteByID implements store.TaskStore.
// Zero affected rows is not an error.
func (s *PostgresTaskStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.conn.Ready(ctx); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to read rows affected", err)
	}

	log.Debug("delete processed",
		slog.String("task_id", id.String()),
		slog.Int64("rows_affected", rows))
	return nil
}
