// Package stats computes time-windowed productivity statistics.
package stats

import (
	"math"

	"github.com/data2paper/reportgen/internal/task"
)

// Period is the time window used to filter tasks for statistics.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all_time"
)

// Days returns the window length in days, or 0 when the period is unbounded.
func (p Period) Days() int {
	switch p {
	case PeriodDaily:
		return 1
	case PeriodWeekly:
		return 7
	case PeriodMonthly:
		return 30
	default:
		return 0
	}
}

// Bounded returns true if the period covers a fixed number of days.
func (p Period) Bounded() bool {
	return p.Days() > 0
}

// DayCount pairs a date-only day label with a task count.
type DayCount struct {
	Day   string
	Count int
}

// noDay is the placeholder pair when no day buckets exist.
var noDay = DayCount{Day: "N/A", Count: 0}

// PeriodStatistics holds the derived statistics for one report window.
// It is recomputed per request and never persisted on its own.
type PeriodStatistics struct {
	Period             Period
	TotalTasks         int
	CompletedTasks     int
	InProgressTasks    int
	PendingTasks       int
	OverdueTasks       int
	CompletionRate     float64 // percentage, 2-decimal rounding
	StatusDistribution map[task.Status]int
	StatusChanges      int
	AvgCompletionHours float64 // 2-decimal rounding
	AllNotes           []task.StatusEvent
	MostProductiveDay  DayCount
	LeastProductiveDay DayCount
	AvgTasksPerDay     float64 // 1-decimal rounding
}

// round returns v rounded to the given number of decimal places.
func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
