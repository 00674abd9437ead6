package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every implementation returns an error wrapping ErrStoreUnavailable when its
// connection was not established.
type TaskStore interface {
	// List returns every persisted task. The order is whatever the
	// backing store yields and must not be relied upon.
	List(ctx context.Context) ([]domain.Task, error)

	// Create persists a task whose ID has already been generated.
	// It returns once the store acknowledged the write.
	Create(ctx context.Context, task *domain.Task) error

	// DeleteByID removes the task with the given ID.
	// Deleting an ID that does not exist is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
