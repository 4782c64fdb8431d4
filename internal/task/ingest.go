package task

import (
	"fmt"
	"strings"
	"time"
)

// RawTask is a loosely-typed task record as handed over by external
// collaborators (JSON exports, API payloads). It is parsed exactly once,
// at the edge, into a Task.
type RawTask struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RawEvent is a loosely-typed status history record.
type RawEvent struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
	Note      string `json:"note"`
}

// timestampFormats are accepted in addition to RFC 3339. Legacy exports
// emit naive timestamps without a zone.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp in any accepted format.
// Returns the zero time and false when the value does not parse.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, f := range timestampFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseStatus validates a status label.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// ParseRecord converts a raw task record into a validated Task.
// An unparseable created_at is tolerated and yields a zero CreatedAt,
// because such a task must still count toward period totals; a missing id,
// missing title, or unknown status rejects the record.
func ParseRecord(raw RawTask) (*Task, error) {
	if raw.ID <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, ErrMissingTaskID)
	}
	if strings.TrimSpace(raw.Title) == "" {
		return nil, fmt.Errorf("%w (task %d): %w", ErrMalformedRecord, raw.ID, ErrMissingTaskTitle)
	}
	status, err := ParseStatus(raw.Status)
	if err != nil {
		return nil, fmt.Errorf("%w (task %d): %w", ErrMalformedRecord, raw.ID, err)
	}

	createdAt, _ := ParseTimestamp(raw.CreatedAt)
	updatedAt, _ := ParseTimestamp(raw.UpdatedAt)

	return &Task{
		ID:          raw.ID,
		UserID:      raw.UserID,
		Title:       strings.TrimSpace(raw.Title),
		Description: raw.Description,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// ParseEvent converts a raw history record into a validated StatusEvent.
// An event without a parseable timestamp cannot be ordered within a
// history and is rejected.
func ParseEvent(raw RawEvent) (*StatusEvent, error) {
	if raw.TaskID <= 0 {
		return nil, fmt.Errorf("%w: event %d has no task id", ErrMalformedRecord, raw.ID)
	}
	status, err := ParseStatus(raw.Status)
	if err != nil {
		return nil, fmt.Errorf("%w (event %d): %w", ErrMalformedRecord, raw.ID, err)
	}
	ts, ok := ParseTimestamp(raw.UpdatedAt)
	if !ok {
		return nil, fmt.Errorf("%w (event %d): unparseable timestamp %q", ErrMalformedRecord, raw.ID, raw.UpdatedAt)
	}

	return &StatusEvent{
		ID:        raw.ID,
		TaskID:    raw.TaskID,
		Status:    status,
		Timestamp: ts,
		Note:      strings.TrimSpace(raw.Note),
	}, nil
}
