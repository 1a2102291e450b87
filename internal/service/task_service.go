package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// TaskService provides task-related operations, layering business rules
// (duplicate-title rejection, existence guards) on top of raw storage.
type TaskService interface {
	// Create saves a new task. Returns ErrDuplicateTitle when a task
	// with the same normalized title already exists, ErrSaveFailed
	// when the store commit has no effect.
	Create(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by ID. Returns ErrTaskNotFound on absence;
	// it never synthesizes a zero-valued task.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List returns all tasks in no guaranteed order.
	List(ctx context.Context) ([]*domain.Task, error)

	// Exists reports whether a task with the given ID is stored. Used
	// as a guard before update/delete.
	Exists(ctx context.Context, id int64) (bool, error)

	// Update replaces the stored task matching task.ID entirely.
	// Callers are expected to have verified existence via Exists; a
	// commit with no effect surfaces as ErrSaveFailed.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the given task by value. The caller must pass the
	// currently stored task (fetched via Get), so a task that no
	// longer matches is not deleted.
	Delete(ctx context.Context, task *domain.Task) error

	// FindByTitle returns the stored task whose normalized title
	// matches the given title, or nil when there is none.
	FindByTitle(ctx context.Context, title string) (*domain.Task, error)
}

// TaskServiceError wraps unexpected errors from the task service with
// operation context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// newTaskServiceError maps store-level errors to service-level
// sentinels; anything unexpected is wrapped with operation context.
func newTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrDuplicateTitle), errors.Is(err, ErrSaveFailed):
		return err
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case store.IsCommitFailure(err):
		return ErrSaveFailed
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService backed by the given store.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) error {
	existing, err := s.FindByTitle(ctx, task.Title)
	if err != nil {
		return newTaskServiceError("create_task", "duplicate check failed", err)
	}
	if existing != nil {
		s.logger.Debug("rejected duplicate title",
			slog.String("title", task.Title),
			slog.Int64("existing_id", existing.ID))
		return ErrDuplicateTitle
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return newTaskServiceError("create_task", "store create failed", err)
	}

	s.logger.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("title", task.Title))
	return nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, newTaskServiceError("get_task", "store get failed", err)
	}
	return task, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.GetAll(ctx)
	if err != nil {
		return nil, newTaskServiceError("list_tasks", "store list failed", err)
	}
	return tasks, nil
}

// Exists implements TaskService.Exists.
func (s *taskServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.taskStore.Exists(ctx, id)
	if err != nil {
		return false, newTaskServiceError("task_exists", "store existence check failed", err)
	}
	return exists, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(ctx context.Context, task *domain.Task) error {
	if err := s.taskStore.Update(ctx, task); err != nil {
		return newTaskServiceError("update_task", "store update failed", err)
	}

	s.logger.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, task *domain.Task) error {
	if err := s.taskStore.Delete(ctx, task); err != nil {
		return newTaskServiceError("delete_task", "store delete failed", err)
	}

	s.logger.Info("task deleted", slog.Int64("task_id", task.ID))
	return nil
}

// FindByTitle implements TaskService.FindByTitle. It scans the full
// collection and compares normalized titles; the store has no
// uniqueness constraint because normalization is a business rule.
func (s *taskServiceImpl) FindByTitle(ctx context.Context, title string) (*domain.Task, error) {
	tasks, err := s.taskStore.GetAll(ctx)
	if err != nil {
		return nil, newTaskServiceError("find_by_title", "store list failed", err)
	}

	want := domain.NormalizeTitle(title)
	for _, t := range tasks {
		if domain.NormalizeTitle(t.Title) == want {
			return t, nil
		}
	}

	return nil, nil
}
