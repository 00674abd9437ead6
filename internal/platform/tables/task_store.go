package tables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/store"
)

// PartitionKey is the single partition every task entity lives in.
const PartitionKey = "tasks"

type taskEntity struct {
	aztables.Entity
	Text string `json:"Text"`
}

// TableTaskStore implements store.TaskStore on one Azure table.
type TableTaskStore struct {
	client *aztables.Client
	conn   *store.Connection
	logger *slog.Logger
}

var _ store.TaskStore = (*TableTaskStore)(nil)

// NewTableTaskStore creates a store backed by client.
// If logger is nil, a default logger will be used.
func NewTableTaskStore(client *aztables.Client, conn *store.Connection, logger *slog.Logger) *TableTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableTaskStore{
		client: client,
		conn:   conn,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// List implements store.TaskStore.
func (s *TableTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := s.conn.Ready(ctx); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter := "PartitionKey eq '" + PartitionKey + "'"
	format := aztables.MetadataFormatNone
	pager := s.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter, Format: &format})

	tasks := make([]domain.Task, 0)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			log.Error("failed to list entities", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("task", "list", "list entities failed", err)
		}
		for _, raw := range resp.Entities {
			var ent taskEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, store.NewStoreError("task", "list", "failed to decode entity", err)
			}
			id, err := uuid.Parse(ent.RowKey)
			if err != nil {
				log.Warn("skipping entity whose row key is not a task id", slog.String("row_key", ent.RowKey))
				continue
			}
			tasks = append(tasks, domain.Task{ID: id, Text: ent.Text})
		}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.
func (s *TableTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", store.ErrInvalidEntity)
	}
	if err := s.conn.Ready(ctx); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload, err := json.Marshal(taskEntity{
		Entity: aztables.Entity{PartitionKey: PartitionKey, RowKey: task.ID.String()},
		Text:   task.Text,
	})
	if err != nil {
		return store.NewStoreError("task", "create", "failed to encode entity", err)
	}

	if _, err := s.client.AddEntity(ctx, payload, nil); err != nil {
		log.Error("failed to add entity",
			slog.String("task_id", task.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "create", "add entity failed", err)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return nil
}

// DeleteByID implements store.TaskStore. A missing entity is not an error.
func (s *TableTaskStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.conn.Ready(ctx); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	match := azcore.ETagAny
	_, err := s.client.DeleteEntity(ctx, PartitionKey, id.String(), &aztables.DeleteEntityOptions{IfMatch: &match})
	if err != nil && !isNotFound(err) {
		log.Error("failed to delete entity",
			slog.String("task_id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "delete entity failed", err)
	}

	log.Debug("delete processed", slog.String("task_id", id.String()), slog.Bool("found", err == nil))
	return nil
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	return respErr.ErrorCode == string(aztables.ResourceNotFound) || respErr.StatusCode == http.StatusNotFound
}
