package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/data2paper/reportgen/internal/docgen"
	"github.com/data2paper/reportgen/internal/history"
	"github.com/data2paper/reportgen/internal/narrative"
	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/stats"
	"github.com/data2paper/reportgen/internal/task"
	"github.com/data2paper/reportgen/internal/user"
)

// fakeBackend implements the user source, task repository, and report
// store over in-memory maps.
type fakeBackend struct {
	users   map[int64]*user.User
	tasks   []*task.Task
	events  map[int64][]task.StatusEvent
	saved   []*report.Report
	saveErr error
}

func (f *fakeBackend) GetUser(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, u *user.User) error { return nil }

func (f *fakeBackend) TasksByUser(_ context.Context, userID int64, _ int) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetTask(_ context.Context, id int64) (*task.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, task.ErrTaskNotFound
}

func (f *fakeBackend) History(_ context.Context, taskID int64) ([]task.StatusEvent, error) {
	return f.events[taskID], nil
}

func (f *fakeBackend) NoteEvents(_ context.Context, taskID int64) ([]task.StatusEvent, error) {
	var out []task.StatusEvent
	for _, e := range f.events[taskID] {
		if e.HasNote() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateTask(_ context.Context, t *task.Task) error      { return nil }
func (f *fakeBackend) AddEvent(_ context.Context, e *task.StatusEvent) error { return nil }
func (f *fakeBackend) Close() error                                          { return nil }

func (f *fakeBackend) SaveReport(_ context.Context, r *report.Report) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.saved = append(f.saved, r)
	return int64(len(f.saved)), nil
}

func (f *fakeBackend) RecentReports(_ context.Context, _ int64, _ int) ([]report.Summary, error) {
	return nil, nil
}

func newBackend() *fakeBackend {
	created := time.Now().UTC().Add(-3 * time.Hour)
	return &fakeBackend{
		users: map[int64]*user.User{
			1: {ID: 1, Name: "Ana", Role: "Engineer"},
		},
		tasks: []*task.Task{
			{ID: 10, UserID: 1, Title: "Ship release", Status: task.StatusCompleted, CreatedAt: created},
			{ID: 11, UserID: 1, Title: "Write docs", Status: task.StatusPending, CreatedAt: created},
		},
		events: map[int64][]task.StatusEvent{
			10: {
				{ID: 1, TaskID: 10, Status: task.StatusPending, Timestamp: created},
				{ID: 2, TaskID: 10, Status: task.StatusCompleted, Timestamp: created.Add(2 * time.Hour), Note: "shipped"},
			},
		},
	}
}

func newGenerator(b *fakeBackend, docDir string) *Generator {
	resolver := history.NewResolver(b)
	return NewGenerator(
		b,
		b,
		resolver,
		stats.NewAggregator(resolver),
		narrative.NewSynthesizer(nil, 0),
		docgen.NewAssembler(docDir),
		b,
	)
}

func TestGenerate(t *testing.T) {
	b := newBackend()
	g := newGenerator(b, t.TempDir())

	rep, err := g.Generate(context.Background(), 1, report.TypeWeekly, GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rep.ID != 1 {
		t.Errorf("ID = %d, want store-assigned 1", rep.ID)
	}
	if rep.UUID == "" {
		t.Error("report should carry a UUID")
	}
	if rep.Stats == nil || rep.Stats.TotalTasks != 2 {
		t.Fatalf("Stats.TotalTasks = %+v, want 2 tasks", rep.Stats)
	}
	if rep.Stats.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v, want 50", rep.Stats.CompletionRate)
	}
	if len(rep.Tasks) != 2 {
		t.Fatalf("annotated %d tasks, want 2", len(rep.Tasks))
	}
	if got := len(rep.Tasks[0].History); got != 2 {
		t.Errorf("task 10 history has %d events, want 2", got)
	}
	if rep.Summary == "" {
		t.Error("report summary must not be empty")
	}
	if !strings.Contains(rep.Summary, "Ana") {
		t.Error("summary should name the user")
	}
	if rep.DocumentPath != "" {
		t.Error("no document requested, path should be empty")
	}
	if len(b.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(b.saved))
	}
}

func TestGenerate_UnknownUser(t *testing.T) {
	g := newGenerator(newBackend(), t.TempDir())

	_, err := g.Generate(context.Background(), 99, report.TypeDaily, GenerateOptions{})
	if !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGenerate_EmptyTaskSet(t *testing.T) {
	b := newBackend()
	b.tasks = nil
	g := newGenerator(b, t.TempDir())

	rep, err := g.Generate(context.Background(), 1, report.TypeMonthly, GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if rep.Stats.TotalTasks != 0 {
		t.Errorf("TotalTasks = %d, want 0", rep.Stats.TotalTasks)
	}
	if rep.Summary == "" {
		t.Error("zero tasks still produce a narrative")
	}
}

func TestGenerate_SaveFailureAborts(t *testing.T) {
	b := newBackend()
	b.saveErr = errors.New("disk full")
	g := newGenerator(b, t.TempDir())

	if _, err := g.Generate(context.Background(), 1, report.TypeDaily, GenerateOptions{}); err == nil {
		t.Fatal("expected save failure to surface")
	}
}

func TestGenerate_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	g := newGenerator(newBackend(), dir)

	rep, err := g.Generate(context.Background(), 1, report.TypeWeekly, GenerateOptions{WriteDocument: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if rep.DocumentPath == "" {
		t.Fatal("expected a document path")
	}
	if _, err := os.Stat(rep.DocumentPath); err != nil {
		t.Fatalf("document not written: %v", err)
	}
}

func TestGenerate_DocumentFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	// a plain file in place of the output directory makes assembly fail
	blocked := filepath.Join(dir, "out")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := newBackend()
	g := newGenerator(b, blocked)

	rep, err := g.Generate(context.Background(), 1, report.TypeDaily, GenerateOptions{WriteDocument: true})
	if err != nil {
		t.Fatalf("Generate should not fail on document errors: %v", err)
	}
	if rep.DocumentPath != "" {
		t.Errorf("DocumentPath = %q, want empty after assembly failure", rep.DocumentPath)
	}
	if len(b.saved) != 1 {
		t.Error("report should still be persisted")
	}
}
