package storetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MemoryStore is an in-memory store.TaskStore for tests of the layers above
// the store. Setting one of the Err fields makes the matching operation fail.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]string

	ListErr   error
	CreateErr error
	DeleteErr error

	calls map[string]int
}

var _ store.TaskStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[uuid.UUID]string),
		calls: make(map[string]int),
	}
}

// List implements store.TaskStore.
func (m *MemoryStore) List(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["list"]++

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]domain.Task, 0, len(m.tasks))
	for id, text := range m.tasks {
		tasks = append(tasks, domain.Task{ID: id, Text: text})
	}
	return tasks, nil
}

// Create implements store.TaskStore.
func (m *MemoryStore) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return fmt.Errorf("%w: nil task", store.ErrInvalidEntity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["create"]++

	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.tasks[task.ID] = task.Text
	return nil
}

// DeleteByID implements store.TaskStore.
func (m *MemoryStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["delete"]++

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.tasks, id)
	return nil
}

// CallCount returns how often op ("list", "create" or "delete") was invoked.
func (m *MemoryStore) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Texts returns the stored texts keyed by ID.
func (m *MemoryStore) Texts() map[uuid.UUID]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]string, len(m.tasks))
	for id, text := range m.tasks {
		out[id] = text
	}
	return out
}
