package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

func newTask(title, description string) *domain.Task {
	return &domain.Task{
		Title:       title,
		Description: description,
		DueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryTaskStoreCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	task := newTask("Buy milk", "2%")
	require.NoError(t, s.Create(ctx, task))
	assert.Equal(t, int64(1), task.ID)

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
}

func TestMemoryTaskStoreCreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	err := s.Create(ctx, newTask("", "2%"))
	assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryTaskStoreIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	first := newTask("first", "d")
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Delete(ctx, first))

	second := newTask("second", "d")
	require.NoError(t, s.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID, "deleted IDs must not be reassigned")
}

func TestMemoryTaskStoreGetByIDNotFound(t *testing.T) {
	s := NewMemoryTaskStore()

	got, err := s.GetByID(context.Background(), 99)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestMemoryTaskStoreExists(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	task := newTask("Buy milk", "2%")
	require.NoError(t, s.Create(ctx, task))

	exists, err := s.Exists(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists(ctx, task.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryTaskStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	task := newTask("Buy milk", "2%")
	require.NoError(t, s.Create(ctx, task))

	task.Description = "skim"
	require.NoError(t, s.Update(ctx, task))

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "skim", got.Description)
}

func TestMemoryTaskStoreUpdateMissing(t *testing.T) {
	s := NewMemoryTaskStore()

	task := newTask("Buy milk", "2%")
	task.ID = 42
	err := s.Update(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrUpdateFailed)
}

func TestMemoryTaskStoreDeleteByValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	task := newTask("Buy milk", "2%")
	require.NoError(t, s.Create(ctx, task))

	t.Run("stale value is not deleted", func(t *testing.T) {
		stale := *task
		stale.Description = "whole"
		assert.ErrorIs(t, s.Delete(ctx, &stale), store.ErrDeleteFailed)

		exists, err := s.Exists(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("matching value is deleted", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, task))

		exists, err := s.Exists(ctx, task.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestMemoryTaskStoreGetAllIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	task := newTask("Buy milk", "2%")
	require.NoError(t, s.Create(ctx, task))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// mutating the snapshot must not touch the store
	all[0].Title = "changed"

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
}
