package mocks

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/service"
)

// MockTaskService implements service.TaskService for testing.
// Each method delegates to the corresponding function field; a nil
// field yields a zero-value success.
type MockTaskService struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetFn         func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn        func(ctx context.Context) ([]*domain.Task, error)
	ExistsFn      func(ctx context.Context, id int64) (bool, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) error
	DeleteFn      func(ctx context.Context, task *domain.Task) error
	FindByTitleFn func(ctx context.Context, title string) (*domain.Task, error)
}

// Ensure MockTaskService implements service.TaskService
var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, service.ErrTaskNotFound
}

func (m *MockTaskService) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return false, nil
}

func (m *MockTaskService) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskService) Delete(ctx context.Context, task *domain.Task) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, task)
	}
	return nil
}

func (m *MockTaskService) FindByTitle(ctx context.Context, title string) (*domain.Task, error) {
	if m.FindByTitleFn != nil {
		return m.FindByTitleFn(ctx, title)
	}
	return nil, nil
}
