// Package pipeline orchestrates report generation end to end: task
// retrieval, statistics aggregation, narrative synthesis, persistence,
// and optional document assembly.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/data2paper/reportgen/internal/docgen"
	"github.com/data2paper/reportgen/internal/history"
	"github.com/data2paper/reportgen/internal/narrative"
	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/stats"
	"github.com/data2paper/reportgen/internal/task"
	"github.com/data2paper/reportgen/internal/user"
)

// Generator runs the report pipeline. All collaborators are injected;
// tests swap in fakes.
type Generator struct {
	Users user.Source
	Repo  task.Repository
	Hist  *history.Resolver
	Agg   *stats.Aggregator
	Synth *narrative.Synthesizer
	Docs  *docgen.Assembler
	Store report.Store

	now func() time.Time
}

// NewGenerator wires a Generator from its collaborators.
func NewGenerator(users user.Source, repo task.Repository, hist *history.Resolver, agg *stats.Aggregator, synth *narrative.Synthesizer, docs *docgen.Assembler, store report.Store) *Generator {
	return &Generator{
		Users: users,
		Repo:  repo,
		Hist:  hist,
		Agg:   agg,
		Synth: synth,
		Docs:  docs,
		Store: store,
		now:   time.Now,
	}
}

// GenerateOptions tune a single generation run.
type GenerateOptions struct {
	// Parameters are free-form key-value filters for custom reports.
	Parameters map[string]string

	// WriteDocument also renders the report to a file on disk.
	WriteDocument bool
}

// Generate produces one report for a user. A missing user aborts the run;
// an empty task set does not, the report simply covers zero tasks.
// Document assembly failure is reported as a warning, not an error: the
// persisted report is still returned with an empty DocumentPath.
func (g *Generator) Generate(ctx context.Context, userID int64, typ report.Type, opts GenerateOptions) (*report.Report, error) {
	u, err := g.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving user %d: %w", userID, err)
	}

	tasks, err := g.Repo.TasksByUser(ctx, userID, typ.WindowDays())
	if err != nil {
		return nil, fmt.Errorf("loading tasks for user %d: %w", userID, err)
	}

	st := g.Agg.Aggregate(ctx, tasks, typ.Period())

	details := g.annotate(ctx, tasks)

	result := g.Synth.Summarize(ctx, narrative.Request{
		User:       u,
		Type:       typ,
		Stats:      st,
		Tasks:      details,
		Parameters: opts.Parameters,
	})
	if result.Source == narrative.SourceFallback {
		log.Printf("pipeline: %s report for user %d used the fallback narrative", typ, userID)
	}

	rep := &report.Report{
		UUID:        uuid.NewString(),
		UserID:      userID,
		Type:        typ,
		GeneratedAt: g.now().UTC(),
		Summary:     result.Text,
		Stats:       st,
		Tasks:       details,
		Parameters:  opts.Parameters,
	}

	id, err := g.Store.SaveReport(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	rep.ID = id

	if opts.WriteDocument && g.Docs != nil {
		path, err := g.Docs.Assemble(rep, u)
		if err != nil {
			log.Printf("pipeline: document assembly failed for report %s: %v", rep.UUID, err)
		} else {
			rep.DocumentPath = path
		}
	}

	return rep, nil
}

// annotate attaches resolved histories to each task, preserving the
// repository's task order.
func (g *Generator) annotate(ctx context.Context, tasks []*task.Task) []report.TaskDetail {
	histories := g.Hist.ResolveAll(ctx, tasks)

	details := make([]report.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		h := histories[t.ID]
		details = append(details, report.TaskDetail{
			Task:    t,
			History: h.Events,
			Notes:   h.Notes,
		})
	}
	return details
}
