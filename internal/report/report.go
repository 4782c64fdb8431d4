// Package report defines the generated report model and its store.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/data2paper/reportgen/internal/stats"
	"github.com/data2paper/reportgen/internal/task"
)

// Type tags a report with its generation window.
type Type string

const (
	TypeDaily   Type = "Daily"
	TypeWeekly  Type = "Weekly"
	TypeMonthly Type = "Monthly"
	TypeCustom  Type = "Custom"
)

// ParseType validates a report type label. Input is case-insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return TypeDaily, nil
	case "weekly":
		return TypeWeekly, nil
	case "monthly":
		return TypeMonthly, nil
	case "custom":
		return TypeCustom, nil
	default:
		return "", fmt.Errorf("unknown report type: %q", s)
	}
}

// Period returns the statistics window for the report type. Custom reports
// run over an unbounded window; parameter-based filtering belongs to the
// caller.
func (t Type) Period() stats.Period {
	switch t {
	case TypeDaily:
		return stats.PeriodDaily
	case TypeWeekly:
		return stats.PeriodWeekly
	case TypeMonthly:
		return stats.PeriodMonthly
	default:
		return stats.PeriodAllTime
	}
}

// WindowDays returns the task-fetch window in days, 0 meaning unbounded.
func (t Type) WindowDays() int {
	return t.Period().Days()
}

// TaskDetail is a task annotated with its resolved status history and the
// note-carrying subset of that history.
type TaskDetail struct {
	Task    *task.Task
	History []task.StatusEvent
	Notes   []task.StatusEvent
}

// Report is the outcome of one generation request. It is immutable once
// assembled; the store may assign it a persistent row ID on save.
type Report struct {
	ID           int64
	UUID         string
	UserID       int64
	Type         Type
	GeneratedAt  time.Time
	Summary      string
	Stats        *stats.PeriodStatistics
	Tasks        []TaskDetail
	Parameters   map[string]string // custom reports only
	DocumentPath string            // empty when no document was written
}

// Summary is a condensed report listing entry.
type Summary struct {
	ID          int64
	UUID        string
	Type        Type
	GeneratedAt time.Time
	Preview     string
}

// Store persists generated reports.
type Store interface {
	// SaveReport persists a report and returns its assigned row ID.
	SaveReport(ctx context.Context, r *Report) (int64, error)

	// RecentReports returns a user's most recent reports, newest first,
	// with previews truncated for listing.
	RecentReports(ctx context.Context, userID int64, limit int) ([]Summary, error)
}
