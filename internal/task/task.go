// Package task defines the core domain types for reportgen.
package task

import (
	"errors"
	"time"
)

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrUnknownStatus    = errors.New("unknown task status")
	ErrMissingTaskID    = errors.New("task id is required")
	ErrMissingTaskTitle = errors.New("task title is required")
)

// Status represents the state of a task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOverdue    Status = "Overdue"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	default:
		return false
	}
}

// Task is an immutable snapshot of a task as read by the report pipeline.
// CreatedAt may be the zero time when the source record carried an
// unparseable timestamp; such tasks still count toward totals but are
// excluded from time-derived statistics.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCompleted returns true if the task has completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasCreationTime returns true if the task's creation timestamp resolved.
func (t *Task) HasCreationTime() bool {
	return !t.CreatedAt.IsZero()
}

// CreatedDay returns the date-only bucket key for the task's creation day,
// or "" when the creation timestamp is unresolved.
func (t *Task) CreatedDay() string {
	if t.CreatedAt.IsZero() {
		return ""
	}
	return t.CreatedAt.Format("2006-01-02")
}

// StatusEvent is a timestamped record of a task transitioning to a status,
// optionally carrying a free-text note. Events are ordered ascending by
// timestamp; the first event for a task is its initial status.
type StatusEvent struct {
	ID        int64
	TaskID    int64
	Status    Status
	Timestamp time.Time
	Note      string // empty means no note
}

// HasNote returns true if the event carries a non-empty note.
func (e *StatusEvent) HasNote() bool {
	return e.Note != ""
}
