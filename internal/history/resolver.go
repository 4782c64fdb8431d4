// Package history resolves a task's ordered status-change events.
package history

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/data2paper/reportgen/internal/task"
)

// defaultWorkers bounds concurrent per-task history lookups in ResolveAll.
const defaultWorkers = 4

// Source provides history lookups. The persistence layer implements it.
type Source interface {
	History(ctx context.Context, taskID int64) ([]task.StatusEvent, error)
	NoteEvents(ctx context.Context, taskID int64) ([]task.StatusEvent, error)
}

// TaskHistory bundles a task's resolved events and its note-carrying subset.
type TaskHistory struct {
	Events []task.StatusEvent
	Notes  []task.StatusEvent
}

// Resolver returns ordered status histories for tasks.
type Resolver struct {
	source  Source
	workers int
}

// NewResolver creates a Resolver over the given source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source, workers: defaultWorkers}
}

// SetWorkers overrides the worker pool size used by ResolveAll.
func (r *Resolver) SetWorkers(n int) {
	if n > 0 {
		r.workers = n
	}
}

// Events returns a task's status events, ascending by timestamp.
// An empty result means the task has no recorded history.
func (r *Resolver) Events(ctx context.Context, taskID int64) ([]task.StatusEvent, error) {
	events, err := r.source.History(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("resolving history for task %d: %w", taskID, err)
	}
	sortByTimestamp(events)
	return events, nil
}

// Notes returns a task's status events carrying non-empty notes,
// ascending by timestamp.
func (r *Resolver) Notes(ctx context.Context, taskID int64) ([]task.StatusEvent, error) {
	events, err := r.source.NoteEvents(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("resolving notes for task %d: %w", taskID, err)
	}
	sortByTimestamp(events)
	return events, nil
}

// ResolveAll resolves histories for all given tasks using a bounded worker
// pool. Results are keyed by task ID so completion order is irrelevant.
// A task whose resolution fails is logged and left out of the result;
// one bad task never aborts the batch.
func (r *Resolver) ResolveAll(ctx context.Context, tasks []*task.Task) map[int64]TaskHistory {
	resolved := make(map[int64]TaskHistory, len(tasks))
	if len(tasks) == 0 {
		return resolved
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, r.workers)
	)

	for _, t := range tasks {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(id int64) {
			defer wg.Done()
			defer func() { <-sem }()

			events, err := r.Events(ctx, id)
			if err != nil {
				log.Printf("history: skipping task %d: %v", id, err)
				return
			}

			th := TaskHistory{Events: events}
			for _, e := range events {
				if e.HasNote() {
					th.Notes = append(th.Notes, e)
				}
			}

			mu.Lock()
			resolved[id] = th
			mu.Unlock()
		}(t.ID)
	}

	wg.Wait()
	return resolved
}

func sortByTimestamp(events []task.StatusEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
