package task

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2025-03-10T09:30:00Z", time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), true},
		{"naive T", "2025-03-10T09:30:00", time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), true},
		{"naive space", "2025-03-10 09:30:00", time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), true},
		{"date only", "2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not-a-date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRecord(t *testing.T) {
	raw := RawTask{
		ID:        42,
		UserID:    1,
		Title:     "  Write quarterly summary  ",
		Status:    "Completed",
		CreatedAt: "2025-03-10T09:00:00Z",
	}

	got, err := ParseRecord(raw)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if got.Title != "Write quarterly summary" {
		t.Errorf("Title = %q, want trimmed title", got.Title)
	}
	if got.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", got.Status, StatusCompleted)
	}
	if !got.HasCreationTime() {
		t.Error("expected a resolved creation time")
	}
}

func TestParseRecord_UnparseableCreatedAt(t *testing.T) {
	raw := RawTask{ID: 7, Title: "Task", Status: "Pending", CreatedAt: "yesterday-ish"}

	got, err := ParseRecord(raw)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if got.HasCreationTime() {
		t.Error("unparseable created_at should yield the zero time")
	}
	if got.CreatedDay() != "" {
		t.Errorf("CreatedDay() = %q, want empty", got.CreatedDay())
	}
}

func TestParseRecord_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  RawTask
		want error
	}{
		{"missing id", RawTask{Title: "x", Status: "Pending"}, ErrMissingTaskID},
		{"missing title", RawTask{ID: 1, Title: "   ", Status: "Pending"}, ErrMissingTaskTitle},
		{"unknown status", RawTask{ID: 1, Title: "x", Status: "Done"}, ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("error %v should wrap ErrMalformedRecord", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error %v should wrap %v", err, tt.want)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	raw := RawEvent{ID: 3, TaskID: 42, Status: "In Progress", UpdatedAt: "2025-03-10 10:00:00", Note: " picked up "}

	got, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if got.Status != StatusInProgress {
		t.Errorf("Status = %q, want %q", got.Status, StatusInProgress)
	}
	if got.Note != "picked up" {
		t.Errorf("Note = %q, want trimmed note", got.Note)
	}
	if !got.HasNote() {
		t.Error("expected HasNote() = true")
	}
}

func TestParseEvent_UnparseableTimestamp(t *testing.T) {
	raw := RawEvent{ID: 3, TaskID: 42, Status: "Pending", UpdatedAt: "???"}

	if _, err := ParseEvent(raw); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted, StatusOverdue} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("Done").Valid() {
		t.Error("unknown status should not be valid")
	}
}
