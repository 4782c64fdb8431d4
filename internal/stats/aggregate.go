package stats

import (
	"context"
	"log"
	"time"

	"github.com/data2paper/reportgen/internal/history"
	"github.com/data2paper/reportgen/internal/task"
)

// Aggregator computes PeriodStatistics from tasks and their histories.
type Aggregator struct {
	resolver *history.Resolver
	now      func() time.Time
}

// NewAggregator creates an Aggregator backed by the given history resolver.
func NewAggregator(resolver *history.Resolver) *Aggregator {
	return &Aggregator{resolver: resolver, now: time.Now}
}

// Aggregate computes statistics over the tasks created within the period
// window. Per-task processing failures are logged and skip only that
// task's history-derived contributions; the aggregation never aborts
// because of one bad record.
func (a *Aggregator) Aggregate(ctx context.Context, tasks []*task.Task, period Period) *PeriodStatistics {
	windowed := a.filterToWindow(tasks, period)

	s := &PeriodStatistics{
		Period:             period,
		TotalTasks:         len(windowed),
		StatusDistribution: make(map[task.Status]int, 4),
		MostProductiveDay:  noDay,
		LeastProductiveDay: noDay,
	}

	for _, t := range windowed {
		s.StatusDistribution[t.Status]++
	}
	s.CompletedTasks = s.StatusDistribution[task.StatusCompleted]
	s.InProgressTasks = s.StatusDistribution[task.StatusInProgress]
	s.PendingTasks = s.StatusDistribution[task.StatusPending]
	s.OverdueTasks = s.StatusDistribution[task.StatusOverdue]

	resolved := a.resolver.ResolveAll(ctx, windowed)

	var completionSamples []float64
	for _, t := range windowed {
		th, ok := resolved[t.ID]
		if !ok {
			// Resolution failure was already logged by the resolver.
			continue
		}

		// One initial event per task does not count as a change.
		if n := len(th.Events); n > 1 {
			s.StatusChanges += n - 1
		}

		s.AllNotes = append(s.AllNotes, th.Notes...)

		if hours, ok := completionHours(t, th.Events); ok {
			completionSamples = append(completionSamples, hours)
		}
	}

	if s.TotalTasks > 0 {
		s.CompletionRate = round(float64(s.CompletedTasks)/float64(s.TotalTasks)*100, 2)
	}
	if len(completionSamples) > 0 {
		var sum float64
		for _, h := range completionSamples {
			sum += h
		}
		s.AvgCompletionHours = round(sum/float64(len(completionSamples)), 2)
	}

	if period.Bounded() {
		a.bucketByDay(windowed, s)
	}

	return s
}

// filterToWindow keeps tasks created within the period window. All-time
// periods skip filtering. Tasks with an unresolved creation timestamp are
// kept; they must still count toward totals.
func (a *Aggregator) filterToWindow(tasks []*task.Task, period Period) []*task.Task {
	days := period.Days()
	if days <= 0 {
		return tasks
	}

	cutoff := a.now().AddDate(0, 0, -days)
	windowed := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.HasCreationTime() || !t.CreatedAt.Before(cutoff) {
			windowed = append(windowed, t)
		}
	}
	return windowed
}

// completionHours computes the time from task creation to its first
// Completed event, in hours. Tasks that are not completed, have no
// recorded transitions, or lack a resolvable timestamp on either end are
// excluded without affecting other tasks.
func completionHours(t *task.Task, events []task.StatusEvent) (float64, bool) {
	if !t.IsCompleted() || len(events) <= 1 || !t.HasCreationTime() {
		return 0, false
	}
	for _, e := range events {
		if e.Status == task.StatusCompleted && !e.Timestamp.IsZero() {
			return e.Timestamp.Sub(t.CreatedAt).Hours(), true
		}
	}
	return 0, false
}

// bucketByDay groups tasks by creation date and derives the productivity
// day pairs. Buckets preserve first-encountered order so ties resolve to
// the first day seen in input iteration order.
func (a *Aggregator) bucketByDay(tasks []*task.Task, s *PeriodStatistics) {
	counts := make(map[string]int)
	var order []string

	for _, t := range tasks {
		day := t.CreatedDay()
		if day == "" {
			log.Printf("stats: task %d has no creation date, excluded from day buckets", t.ID)
			continue
		}
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}

	if len(order) == 0 {
		return
	}

	most, least := DayCount{Day: order[0], Count: counts[order[0]]}, DayCount{Day: order[0], Count: counts[order[0]]}
	total := 0
	for _, day := range order {
		c := counts[day]
		total += c
		if c > most.Count {
			most = DayCount{Day: day, Count: c}
		}
		if c < least.Count {
			least = DayCount{Day: day, Count: c}
		}
	}

	s.MostProductiveDay = most
	s.LeastProductiveDay = least
	s.AvgTasksPerDay = round(float64(total)/float64(len(order)), 1)
}
