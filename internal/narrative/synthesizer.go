// Package narrative produces the human-readable summary text for a report.
//
// Generation is a two-state machine: try the external generative service
// once, under a timeout; on any failure fall back to a deterministic
// template built from the same statistics. Summarize always returns text.
package narrative

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/data2paper/reportgen/internal/llm"
	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/stats"
	"github.com/data2paper/reportgen/internal/user"
)

// DefaultTimeout bounds the single external generation attempt.
const DefaultTimeout = 30 * time.Second

// Source tells which path produced the narrative.
type Source string

const (
	SourceExternal Source = "external"
	SourceFallback Source = "fallback"
)

// Result is the outcome of narrative synthesis. Text is never empty.
type Result struct {
	Text   string
	Source Source
}

// Request carries everything the synthesizer needs for one report.
type Request struct {
	User       *user.User
	Type       report.Type
	Stats      *stats.PeriodStatistics
	Tasks      []report.TaskDetail
	Parameters map[string]string // custom reports only
}

// genBudget bounds one external generation call. Longer periods get a
// larger output budget, more context, and a higher temperature.
type genBudget struct {
	maxTokens   int64
	temperature float64
	taskCap     int
	noteCap     int
}

func budgetFor(t report.Type) genBudget {
	switch t {
	case report.TypeDaily:
		return genBudget{maxTokens: 1500, temperature: 0.6, taskCap: 10, noteCap: 20}
	case report.TypeWeekly:
		return genBudget{maxTokens: 2000, temperature: 0.7, taskCap: 15, noteCap: 30}
	case report.TypeMonthly:
		return genBudget{maxTokens: 2500, temperature: 0.8, taskCap: 20, noteCap: 50}
	default:
		return genBudget{maxTokens: 2000, temperature: 0.7, taskCap: 20, noteCap: 20}
	}
}

// Synthesizer generates report narratives.
type Synthesizer struct {
	client  llm.Client // nil when external generation is disabled
	timeout time.Duration
	now     func() time.Time
}

// NewSynthesizer creates a Synthesizer. A nil client disables the external
// path; every request then takes the fallback.
func NewSynthesizer(client llm.Client, timeout time.Duration) *Synthesizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Synthesizer{client: client, timeout: timeout, now: time.Now}
}

// Summarize produces the narrative for a report. It never fails: any
// error or empty output from the external path routes to the fallback.
func (s *Synthesizer) Summarize(ctx context.Context, req Request) Result {
	if text, ok := s.tryExternal(ctx, req); ok {
		return Result{Text: text, Source: SourceExternal}
	}
	return Result{Text: s.fallback(req), Source: SourceFallback}
}

// tryExternal makes a single bounded attempt against the external service.
// No retries: one attempt, then fallback.
func (s *Synthesizer) tryExternal(ctx context.Context, req Request) (string, bool) {
	if s.client == nil {
		return "", false
	}

	budget := budgetFor(req.Type)
	prompt := buildPrompt(req, budget)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.client.Chat(callCtx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}, llm.GenOpts{MaxTokens: budget.maxTokens, Temperature: budget.temperature})
	if err != nil {
		log.Printf("narrative: external generation failed, using fallback: %v", err)
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("narrative: external generation returned empty output, using fallback")
		return "", false
	}
	return text, true
}
