// Package service provides application-level services for managing tasks.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent conditions that callers check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDuplicateTitle indicates that a task with the same normalized
	// title already exists. API layer should map this to
	// HTTP 422 Unprocessable Entity.
	ErrDuplicateTitle = errors.New("task with the same title already exists")

	// ErrSaveFailed indicates that the store reported a commit with no
	// effect. API layer should map this to HTTP 500.
	ErrSaveFailed = errors.New("task could not be saved")
)
