package task

import (
	"context"
)

// Repository defines the storage interface for tasks and their histories.
type Repository interface {
	// TasksByUser returns a user's tasks. When days > 0 the result is
	// limited to tasks created within the last N days.
	TasksByUser(ctx context.Context, userID int64, days int) ([]*Task, error)

	// GetTask retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// History returns a task's status events, ascending by timestamp.
	// An empty history is a valid result, not an error.
	History(ctx context.Context, taskID int64) ([]StatusEvent, error)

	// NoteEvents returns the subset of a task's status events carrying a
	// non-empty note, ascending by timestamp.
	NoteEvents(ctx context.Context, taskID int64) ([]StatusEvent, error)

	// CreateTask adds a task to the repository. A zero ID is assigned by
	// the store; a non-zero ID is preserved (import path).
	CreateTask(ctx context.Context, t *Task) error

	// AddEvent appends a status event to a task's history.
	AddEvent(ctx context.Context, e *StatusEvent) error

	// Close releases any resources held by the repository.
	Close() error
}
