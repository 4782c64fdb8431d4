package db

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/task"
	"github.com/data2paper/reportgen/internal/user"
)

// openStore creates a fresh store for each test with automatic cleanup.
func openStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedUser(t *testing.T, s *Store) *user.User {
	t.Helper()
	u := &user.User{Name: "Ana", Email: "ana@example.com", Role: "Engineer"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

func TestUserRoundTrip(t *testing.T) {
	s := openStore(t)
	u := seedUser(t, s)

	if u.ID == 0 {
		t.Fatal("store should assign a user ID")
	}

	got, err := s.GetUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Ana" || got.Role != "Engineer" {
		t.Errorf("got %+v", got)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := openStore(t)

	if _, err := s.GetUser(context.Background(), 999); !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateUser_PreservesExplicitID(t *testing.T) {
	s := openStore(t)

	u := &user.User{ID: 42, Name: "Imported"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 42 {
		t.Errorf("ID = %d, want preserved 42", u.ID)
	}
	if _, err := s.GetUser(context.Background(), 42); err != nil {
		t.Errorf("GetUser(42): %v", err)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	s := openStore(t)
	u := seedUser(t, s)
	ctx := context.Background()

	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tk := &task.Task{
		UserID:      u.ID,
		Title:       "Ship release",
		Description: "Cut the 2.0 tag",
		Status:      task.StatusInProgress,
		CreatedAt:   created,
	}
	if err := s.CreateTask(ctx, tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if tk.ID == 0 {
		t.Fatal("store should assign a task ID")
	}

	got, err := s.GetTask(ctx, tk.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "Ship release" || got.Status != task.StatusInProgress {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestTask_ZeroCreatedAtSurvivesStorage(t *testing.T) {
	s := openStore(t)
	u := seedUser(t, s)
	ctx := context.Background()

	tk := &task.Task{UserID: u.ID, Title: "Undated", Status: task.StatusPending}
	if err := s.CreateTask(ctx, tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := s.GetTask(ctx, tk.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.HasCreationTime() {
		t.Error("zero creation time should survive a round trip")
	}
}

func TestTasksByUser_Window(t *testing.T) {
	s := openStore(t)
	u := seedUser(t, s)
	ctx := context.Background()

	recent := &task.Task{UserID: u.ID, Title: "Recent", Status: task.StatusPending,
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour)}
	old := &task.Task{UserID: u.ID, Title: "Old", Status: task.StatusPending,
		CreatedAt: time.Now().UTC().AddDate(0, 0, -20)}
	undated := &task.Task{UserID: u.ID, Title: "Undated", Status: task.StatusPending}
	for _, tk := range []*task.Task{recent, old, undated} {
		if err := s.CreateTask(ctx, tk); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	all, err := s.TasksByUser(ctx, u.ID, 0)
	if err != nil {
		t.Fatalf("TasksByUser: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unbounded query returned %d tasks, want 3", len(all))
	}

	windowed, err := s.TasksByUser(ctx, u.ID, 7)
	if err != nil {
		t.Fatalf("TasksByUser: %v", err)
	}
	if len(windowed) != 2 {
		t.Fatalf("weekly window returned %d tasks, want 2 (recent + undated)", len(windowed))
	}
	for _, tk := range windowed {
		if tk.Title == "Old" {
			t.Error("old task should be outside the window")
		}
	}
}

func TestGetTask_NotFound(t *testing.T) {
	s := openStore(t)

	if _, err := s.GetTask(context.Background(), 999); !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s := openStore(t)
	u := seedUser(t, s)
	ctx := context.Background()

	tk := &task.Task{UserID: u.ID, Title: "Tracked", Status: task.StatusCompleted,
		CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	if err := s.CreateTask(ctx, tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// inserted out of order on purpose
	events := []*task.StatusEvent{
		{TaskID: tk.ID, Status: task.StatusCompleted, Timestamp: tk.CreatedAt.Add(5 * time.Hour), Note: "done"},
		{TaskID: tk.ID, Status: task.StatusPending, Timestamp: tk.CreatedAt},
		{TaskID: tk.ID, Status: task.StatusInProgress, Timestamp: tk.CreatedAt.Add(time.Hour)},
	}
	for _, e := range events {
		if err := s.AddEvent(ctx, e); err != nil {
			t.Fatalf("AddEvent: %v", err)
		}
	}

	history, err := s.History(ctx, tk.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d events, want 3", len(history))
	}
	if history[0].Status != task.StatusPending || history[2].Status != task.StatusCompleted {
		t.Errorf("history not ordered by timestamp: %+v", history)
	}

	notes, err := s.NoteEvents(ctx, tk.ID)
	if err != nil {
		t.Fatalf("NoteEvents: %v", err)
	}
	if len(notes) != 1 || notes[0].Note != "done" {
		t.Errorf("notes = %+v, want the single noted event", notes)
	}
}

func TestReportsRoundTrip(t *testing.T) {
	s := openStore(t)
	u := seedUser(t, s)
	ctx := context.Background()

	long := strings.Repeat("x", 150)
	reps := []*report.Report{
		{UUID: "uuid-1", UserID: u.ID, Type: report.TypeDaily,
			GeneratedAt: time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC), Summary: "short summary"},
		{UUID: "uuid-2", UserID: u.ID, Type: report.TypeWeekly,
			GeneratedAt: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), Summary: long},
	}
	for _, r := range reps {
		id, err := s.SaveReport(ctx, r)
		if err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
		if id == 0 {
			t.Fatal("SaveReport should return an ID")
		}
	}

	got, err := s.RecentReports(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reports, want 2", len(got))
	}
	if got[0].UUID != "uuid-2" {
		t.Errorf("newest report first, got %q", got[0].UUID)
	}
	if len(got[0].Preview) != 103 || !strings.HasSuffix(got[0].Preview, "...") {
		t.Errorf("long summary should truncate to 100 chars + ellipsis, got %d chars", len(got[0].Preview))
	}
	if got[1].Preview != "short summary" {
		t.Errorf("short summary should pass through, got %q", got[1].Preview)
	}

	limited, err := s.RecentReports(ctx, u.ID, 1)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d reports", len(limited))
	}
}
