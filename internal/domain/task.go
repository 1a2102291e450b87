package domain

import (
	"errors"
	"strings"
	"time"
)

// Task-specific validation errors
var (
	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskDescriptionEmpty is returned when a task's description is empty.
	ErrTaskDescriptionEmpty = errors.New("task description cannot be empty")
)

// Task is the sole persisted entity: a unit of work with a title,
// a free-form description and a due date. The ID is assigned by the
// store on creation and is immutable afterwards.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

// NewTask creates a Task with the given title, description and due date.
// The ID is left zero; the store assigns it on creation.
// Returns an error if validation fails.
func NewTask(title, description string, dueDate time.Time) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.Description == "" {
		return ErrTaskDescriptionEmpty
	}

	return nil
}

// NormalizeTitle folds a title into the form used for duplicate
// detection: surrounding whitespace removed, case folded to upper.
// Two tasks collide when their normalized titles are equal.
func NormalizeTitle(title string) string {
	return strings.ToUpper(strings.TrimSpace(title))
}
