package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist
	// in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrSaveFailed is returned when an insert commits with no effect.
	// There is no error object from the engine in this case, only zero
	// affected rows; callers must treat it as a persistence failure.
	ErrSaveFailed = errors.New("save failed")

	// ErrUpdateFailed is returned when an update commits with zero
	// affected rows, for example because the task vanished between the
	// caller's existence check and the write.
	ErrUpdateFailed = errors.New("update failed")

	// ErrDeleteFailed is returned when a delete commits with zero
	// affected rows. Because deletes match the full task value, this
	// also covers the case where the stored task no longer matches
	// what the caller fetched.
	ErrDeleteFailed = errors.New("delete failed")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCommitFailure reports whether the error is one of the
// zero-rows-affected commit failures. The API layer maps all of these
// to a generic server error, matching the store's coarse
// success/failure contract.
func IsCommitFailure(err error) bool {
	return errors.Is(err, ErrSaveFailed) ||
		errors.Is(err, ErrUpdateFailed) ||
		errors.Is(err, ErrDeleteFailed)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "task")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity,
// operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
