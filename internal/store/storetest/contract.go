// Package storetest holds the behavioural contract every store.TaskStore
// implementation must satisfy. Backend test files call RunTaskStoreContract
// with a constructor for their own store.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Timeout bounds every store call made by the contract.
const Timeout = 5 * time.Second

// RunTaskStoreContract runs the task store contract against the store
// returned by newStore. newStore is invoked once per subtest; the returned
// store may already hold tasks, so assertions are relative to its contents.
func RunTaskStoreContract(t *testing.T, newStore func(t *testing.T) store.TaskStore) {
	t.Helper()

	t.Run("create then list includes submitted text", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		texts := []string{"buy milk", "", "  keep   spacing  ", "ünïcødé ✓", "<b>not html</b>"}
		created := make([]*domain.Task, 0, len(texts))
		for _, text := range texts {
			task := domain.NewTask(text)
			require.NoError(t, s.Create(ctx, task))
			created = append(created, task)
		}

		tasks, err := s.List(ctx)
		require.NoError(t, err)

		byID := index(tasks)
		for _, want := range created {
			got, ok := byID[want.ID]
			require.True(t, ok, "task %s missing from list", want.ID)
			assert.Equal(t, want.Text, got.Text, "text must round-trip verbatim")
		}
	})

	t.Run("delete of missing id is a silent no-op", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		require.NoError(t, s.Create(ctx, domain.NewTask("survivor")))
		before, err := s.List(ctx)
		require.NoError(t, err)

		require.NoError(t, s.DeleteByID(ctx, uuid.New()))
		require.NoError(t, s.DeleteByID(ctx, uuid.Nil))

		after, err := s.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, before, after, "collection must be unchanged")
	})

	t.Run("create then delete removes the task", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		task := domain.NewTask("short lived")
		require.NoError(t, s.Create(ctx, task))
		require.NoError(t, s.DeleteByID(ctx, task.ID))

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, index(tasks), task.ID)

		require.NoError(t, s.DeleteByID(ctx, task.ID), "second delete must also succeed")
	})

	t.Run("list pick delete round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		for _, text := range []string{"one", "two", "three"} {
			require.NoError(t, s.Create(ctx, domain.NewTask(text)))
		}

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, tasks)

		picked := tasks[len(tasks)/2]
		require.NoError(t, s.DeleteByID(ctx, picked.ID))

		remaining, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, index(remaining), picked.ID)
		assert.Len(t, remaining, len(tasks)-1)
	})

	t.Run("create rejects nil task", func(t *testing.T) {
		s := newStore(t)
		err := s.Create(testContext(t), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrInvalidEntity))
	})
}

// AssertUnavailable checks that every operation of s fails with
// store.ErrStoreUnavailable.
func AssertUnavailable(t *testing.T, s store.TaskStore) {
	t.Helper()
	ctx := testContext(t)

	_, err := s.List(ctx)
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable), "List: %v", err)

	err = s.Create(ctx, domain.NewTask("never stored"))
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable), "Create: %v", err)

	err = s.DeleteByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable), "DeleteByID: %v", err)
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	t.Cleanup(cancel)
	return ctx
}

func index(tasks []domain.Task) map[uuid.UUID]domain.Task {
	m := make(map[uuid.UUID]domain.Task, len(tasks))
	for _, task := range tasks {
		m[task.ID] = task
	}
	return m
}
