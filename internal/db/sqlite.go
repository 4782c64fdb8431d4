// Package db implements SQLite-backed storage for users, tasks, status
// histories, and generated reports.
//
// Timestamps are stored as RFC 3339 strings; an empty string stands for
// the zero time (a record whose source timestamp never resolved).
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/task"
	"github.com/data2paper/reportgen/internal/user"
)

const previewLen = 100

// Store is a SQLite-backed implementation of task.Repository, user.Source,
// and report.Store.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// explicitID maps a zero ID to NULL so SQLite assigns the next rowid,
// while a caller-provided ID (the import path) is preserved.
func explicitID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// GetUser implements user.Source.
func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, name, email, role FROM users WHERE id = ?`, id)

	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("reading user %d: %w", id, err)
	}
	return &u, nil
}

// CreateUser implements user.Source.
func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, role) VALUES (?, ?, ?, ?)`,
		explicitID(u.ID), u.Name, u.Email, u.Role)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	if u.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		u.ID = id
	}
	return nil
}

// TasksByUser implements task.Repository.
func (s *Store) TasksByUser(ctx context.Context, userID int64, days int) ([]*task.Task, error) {
	query := `SELECT id, user_id, title, description, status, created_at, updated_at
		FROM tasks WHERE user_id = ?`
	args := []any{userID}
	if days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		// tasks with an unresolved creation time stay in scope
		query += ` AND (created_at = '' OR created_at >= ?)`
		args = append(args, cutoff.Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks for user %d: %w", userID, err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask implements task.Repository.
func (s *Store) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, status, created_at, updated_at
		FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var status, createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Status = task.Status(status)
	t.CreatedAt = decodeTime(createdAt)
	t.UpdatedAt = decodeTime(updatedAt)
	return &t, nil
}

// CreateTask implements task.Repository.
func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		explicitID(t.ID), t.UserID, t.Title, t.Description, string(t.Status),
		encodeTime(t.CreatedAt), encodeTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	if t.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		t.ID = id
	}
	return nil
}

// History implements task.Repository.
func (s *Store) History(ctx context.Context, taskID int64) ([]task.StatusEvent, error) {
	return s.queryEvents(ctx, taskID,
		`SELECT id, task_id, status, changed_at, note FROM task_status_history
		WHERE task_id = ? ORDER BY changed_at, id`)
}

// NoteEvents implements task.Repository.
func (s *Store) NoteEvents(ctx context.Context, taskID int64) ([]task.StatusEvent, error) {
	return s.queryEvents(ctx, taskID,
		`SELECT id, task_id, status, changed_at, note FROM task_status_history
		WHERE task_id = ? AND note <> '' ORDER BY changed_at, id`)
}

func (s *Store) queryEvents(ctx context.Context, taskID int64, query string) ([]task.StatusEvent, error) {
	rows, err := s.conn.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing history for task %d: %w", taskID, err)
	}
	defer rows.Close()

	var events []task.StatusEvent
	for rows.Next() {
		var e task.StatusEvent
		var status, changedAt string
		if err := rows.Scan(&e.ID, &e.TaskID, &status, &changedAt, &e.Note); err != nil {
			return nil, fmt.Errorf("scanning history for task %d: %w", taskID, err)
		}
		e.Status = task.Status(status)
		e.Timestamp = decodeTime(changedAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// AddEvent implements task.Repository.
func (s *Store) AddEvent(ctx context.Context, e *task.StatusEvent) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO task_status_history (task_id, status, changed_at, note)
		VALUES (?, ?, ?, ?)`,
		e.TaskID, string(e.Status), encodeTime(e.Timestamp), e.Note)
	if err != nil {
		return fmt.Errorf("recording status event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("recording status event: %w", err)
	}
	e.ID = id
	return nil
}

// SaveReport implements report.Store.
func (s *Store) SaveReport(ctx context.Context, r *report.Report) (int64, error) {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO reports (uuid, user_id, report_type, generated_at, summary_text, file_path)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.UUID, r.UserID, string(r.Type), encodeTime(r.GeneratedAt), r.Summary, r.DocumentPath)
	if err != nil {
		return 0, fmt.Errorf("saving report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("saving report: %w", err)
	}
	return id, nil
}

// RecentReports implements report.Store.
func (s *Store) RecentReports(ctx context.Context, userID int64, limit int) ([]report.Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, uuid, report_type, generated_at, summary_text
		FROM reports WHERE user_id = ?
		ORDER BY generated_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []report.Summary
	for rows.Next() {
		var sm report.Summary
		var typ, generatedAt, summary string
		if err := rows.Scan(&sm.ID, &sm.UUID, &typ, &generatedAt, &summary); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		sm.Type = report.Type(typ)
		sm.GeneratedAt = decodeTime(generatedAt)
		sm.Preview = preview(summary)
		out = append(out, sm)
	}
	return out, rows.Err()
}

func preview(text string) string {
	if len(text) <= previewLen {
		return text
	}
	return text[:previewLen] + "..."
}
