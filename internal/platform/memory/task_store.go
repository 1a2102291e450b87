// Package memory provides an in-memory implementation of the store
// interfaces. It backs the server when no database is configured and
// doubles as a fast store for tests.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// MemoryTaskStore is a thread-safe in-memory implementation of
// store.TaskStore. IDs are assigned from a monotonically increasing
// counter and never reused within a process run, matching the
// persistent backend's identity-column behavior.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	nextID int64
}

// NewMemoryTaskStore creates an empty MemoryTaskStore ready for use.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Create implements store.TaskStore.Create.
func (m *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = *task
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (m *MemoryTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// GetAll implements store.TaskStore.GetAll. The returned slice is a
// snapshot; order is not guaranteed.
func (m *MemoryTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		t := task
		tasks = append(tasks, &t)
	}
	return tasks, nil
}

// Exists implements store.TaskStore.Exists.
func (m *MemoryTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.tasks[id]
	return ok, nil
}

// Update implements store.TaskStore.Update.
func (m *MemoryTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrUpdateFailed
	}
	m.tasks[task.ID] = *task
	return nil
}

// Delete implements store.TaskStore.Delete. The stored task must still
// equal the given value; a row that was concurrently modified is left
// alone and ErrDeleteFailed is returned.
func (m *MemoryTaskStore) Delete(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrDeleteFailed
	}

	if stored.Title != task.Title ||
		stored.Description != task.Description ||
		!stored.DueDate.Equal(task.DueDate) {
		return store.ErrDeleteFailed
	}

	delete(m.tasks, task.ID)
	return nil
}

// WithTx implements store.TaskStore.WithTx. The in-memory store has no
// transactions; every operation commits immediately, so the store
// returns itself.
func (m *MemoryTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
