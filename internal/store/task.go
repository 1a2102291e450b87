package store

import (
	"context"
	"database/sql"

	"github.com/taskhub/taskhub-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Title uniqueness is deliberately NOT enforced here: the duplicate
// rule depends on title normalization, which is a business rule owned
// by the service layer. The store persists whatever it is given.
type TaskStore interface {
	// Create saves a new task and fills in the store-assigned ID.
	// Returns ErrSaveFailed if the insert commits without effect.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist; it never
	// returns a synthesized zero-valued task.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetAll returns every stored task. No ordering is guaranteed.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// Exists reports whether a task with the given ID is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Update replaces the stored task matching task.ID entirely.
	// Returns ErrUpdateFailed if no row was affected.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the given task by value: every field must still
	// match the stored row, not just the ID. This protects callers
	// from deleting a task that was concurrently modified out from
	// under them. Returns ErrDeleteFailed if no row was affected.
	Delete(ctx context.Context, task *domain.Task) error

	// WithTx returns a TaskStore bound to the provided transaction,
	// allowing multiple operations to commit atomically. The caller
	// owns the transaction lifecycle.
	WithTx(tx *sql.Tx) TaskStore
}
