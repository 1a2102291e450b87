package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// MockTaskStore is a mock implementation of store.TaskStore
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	args := m.Called(tx)
	st, _ := args.Get(0).(store.TaskStore)
	return st
}

func newService(t *testing.T, taskStore store.TaskStore) TaskService {
	t.Helper()

	svc, err := NewTaskService(taskStore, slog.Default())
	require.NoError(t, err)
	return svc
}

func storedTask(id int64, title string) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       title,
		Description: "description",
		DueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewTaskService(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		svc, err := NewTaskService(nil, slog.Default())
		assert.Nil(t, svc)
		assert.Error(t, err)
	})

	t.Run("nil logger", func(t *testing.T) {
		svc, err := NewTaskService(new(MockTaskStore), nil)
		assert.Nil(t, svc)
		assert.Error(t, err)
	})
}

func TestTaskServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		taskStore.On("GetAll", ctx).Return([]*domain.Task{}, nil)
		taskStore.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Task).ID = 1
			}).
			Return(nil)

		svc := newService(t, taskStore)

		task := &domain.Task{Title: "Buy milk", Description: "2%", DueDate: time.Now().UTC()}
		require.NoError(t, svc.Create(ctx, task))
		assert.Equal(t, int64(1), task.ID)
		taskStore.AssertExpectations(t)
	})

	t.Run("duplicate title rejected", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		taskStore.On("GetAll", ctx).Return([]*domain.Task{storedTask(1, "Buy milk")}, nil)

		svc := newService(t, taskStore)

		task := &domain.Task{Title: "  BUY MILK", Description: "whatever", DueDate: time.Now().UTC()}
		err := svc.Create(ctx, task)
		assert.ErrorIs(t, err, ErrDuplicateTitle)
		taskStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("commit failure surfaces as save failed", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		taskStore.On("GetAll", ctx).Return([]*domain.Task{}, nil)
		taskStore.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
			Return(store.ErrSaveFailed)

		svc := newService(t, taskStore)

		task := &domain.Task{Title: "Buy milk", Description: "2%", DueDate: time.Now().UTC()}
		err := svc.Create(ctx, task)
		assert.ErrorIs(t, err, ErrSaveFailed)
	})
}

func TestTaskServiceCreateDuplicateVariants(t *testing.T) {
	ctx := context.Background()

	// all variants collide with the stored "Buy milk", regardless of
	// description or due date differences
	variants := []string{"Buy milk", "BUY MILK", "buy milk", "Buy milk   ", "  BUY MILK", " buy Milk "}

	for _, title := range variants {
		t.Run(title, func(t *testing.T) {
			taskStore := new(MockTaskStore)
			taskStore.On("GetAll", ctx).Return([]*domain.Task{storedTask(1, "Buy milk")}, nil)

			svc := newService(t, taskStore)

			task := &domain.Task{Title: title, Description: "other", DueDate: time.Now().UTC()}
			assert.ErrorIs(t, svc.Create(ctx, task), ErrDuplicateTitle)
		})
	}
}

func TestTaskServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		want := storedTask(3, "Buy milk")
		taskStore := new(MockTaskStore)
		taskStore.On("GetByID", ctx, int64(3)).Return(want, nil)

		svc := newService(t, taskStore)

		got, err := svc.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("absence is explicit, never a zero value", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		taskStore.On("GetByID", ctx, int64(9)).Return(nil, store.ErrTaskNotFound)

		svc := newService(t, taskStore)

		got, err := svc.Get(ctx, 9)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskServiceList(t *testing.T) {
	ctx := context.Background()

	tasks := []*domain.Task{storedTask(1, "a"), storedTask(2, "b")}
	taskStore := new(MockTaskStore)
	taskStore.On("GetAll", ctx).Return(tasks, nil)

	svc := newService(t, taskStore)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, tasks, got)
}

func TestTaskServiceExists(t *testing.T) {
	ctx := context.Background()

	taskStore := new(MockTaskStore)
	taskStore.On("Exists", ctx, int64(1)).Return(true, nil)
	taskStore.On("Exists", ctx, int64(2)).Return(false, nil)

	svc := newService(t, taskStore)

	exists, err := svc.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTaskServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		task := storedTask(1, "Buy milk")
		taskStore := new(MockTaskStore)
		taskStore.On("Update", ctx, task).Return(nil)

		svc := newService(t, taskStore)
		require.NoError(t, svc.Update(ctx, task))
	})

	t.Run("zero rows affected surfaces as save failed", func(t *testing.T) {
		task := storedTask(1, "Buy milk")
		taskStore := new(MockTaskStore)
		taskStore.On("Update", ctx, task).Return(store.ErrUpdateFailed)

		svc := newService(t, taskStore)
		assert.ErrorIs(t, svc.Update(ctx, task), ErrSaveFailed)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		task := storedTask(1, "Buy milk")
		taskStore := new(MockTaskStore)
		taskStore.On("Delete", ctx, task).Return(nil)

		svc := newService(t, taskStore)
		require.NoError(t, svc.Delete(ctx, task))
	})

	t.Run("value mismatch surfaces as save failed", func(t *testing.T) {
		task := storedTask(1, "Buy milk")
		taskStore := new(MockTaskStore)
		taskStore.On("Delete", ctx, task).Return(store.ErrDeleteFailed)

		svc := newService(t, taskStore)
		assert.ErrorIs(t, svc.Delete(ctx, task), ErrSaveFailed)
	})
}

func TestTaskServiceFindByTitle(t *testing.T) {
	ctx := context.Background()

	stored := []*domain.Task{storedTask(1, "Buy milk"), storedTask(2, "Walk dog")}

	t.Run("match on normalized title", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		taskStore.On("GetAll", ctx).Return(stored, nil)

		svc := newService(t, taskStore)

		got, err := svc.FindByTitle(ctx, "  buy milk ")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("no match returns nil without error", func(t *testing.T) {
		taskStore := new(MockTaskStore)
		taskStore.On("GetAll", ctx).Return(stored, nil)

		svc := newService(t, taskStore)

		got, err := svc.FindByTitle(ctx, "Feed cat")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestTaskServiceErrorWrapping(t *testing.T) {
	ctx := context.Background()

	boom := errors.New("connection reset")
	taskStore := new(MockTaskStore)
	taskStore.On("GetAll", ctx).Return(nil, boom)

	svc := newService(t, taskStore)

	_, err := svc.List(ctx)
	require.Error(t, err)

	var svcErr *TaskServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "list_tasks", svcErr.Operation)
	assert.ErrorIs(t, err, boom)
}
