package docgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/stats"
	"github.com/data2paper/reportgen/internal/task"
	"github.com/data2paper/reportgen/internal/user"
)

const (
	maxTaskDetails = 20
	maxNoteEntries = 30
)

// Assembler writes report documents as markdown files.
type Assembler struct {
	OutputDir string
}

// NewAssembler creates an Assembler writing into dir.
func NewAssembler(dir string) *Assembler {
	return &Assembler{OutputDir: dir}
}

// Assemble renders the report to markdown and writes it to the output
// directory. It returns the path of the written file.
func (a *Assembler) Assemble(rep *report.Report, u *user.User) (string, error) {
	if err := os.MkdirAll(a.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%d.md",
		strings.ToLower(string(rep.Type)),
		rep.GeneratedAt.Format("20060102_150405"),
		rep.UserID)
	path := filepath.Join(a.OutputDir, name)

	content := Render(a.Sections(rep, u))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return path, nil
}

// Sections builds the document structure in presentation order. Data-driven
// sections appear only when their data is present; the header, insight,
// visualization, and footer sections always render.
func (a *Assembler) Sections(rep *report.Report, u *user.User) []Section {
	var out []Section

	out = append(out, headerSection(rep, u))

	if rep.Type == report.TypeCustom {
		out = append(out, parametersSection(rep.Parameters))
	}
	if strings.TrimSpace(rep.Summary) != "" {
		out = append(out, summarySection(rep.Summary))
	}
	if rep.Stats != nil {
		out = append(out, metricsSection(rep.Stats))
		out = append(out, distributionSection(rep.Stats))
	}
	out = append(out, insightsSection(rep))
	out = append(out, visualizationSection(rep.Type))
	if len(rep.Tasks) > 0 {
		out = append(out, taskSections(rep.Tasks)...)
	}
	if rep.Stats != nil && len(rep.Stats.AllNotes) > 0 {
		out = append(out, notesSection(rep.Stats.AllNotes))
	}
	out = append(out, footerSection(rep))

	return out
}

func headerSection(rep *report.Report, u *user.User) Section {
	return Section{
		Kind:  SectionHeader,
		Title: fmt.Sprintf("%s Productivity Report", rep.Type),
		Lines: []string{
			fmt.Sprintf("**Prepared for:** %s", u.DisplayName()),
			fmt.Sprintf("**Role:** %s", u.DisplayRole()),
			fmt.Sprintf("**Generated:** %s", rep.GeneratedAt.Format("2006-01-02 15:04:05")),
			fmt.Sprintf("**Report ID:** %s", rep.UUID),
		},
	}
}

func parametersSection(params map[string]string) Section {
	sec := Section{Kind: SectionList, Title: "Report Parameters"}
	if len(params) == 0 {
		sec.Kind = SectionParagraph
		sec.Lines = []string{"No specific parameters provided."}
		return sec
	}
	for _, k := range sortedKeys(params) {
		sec.Lines = append(sec.Lines, fmt.Sprintf("**%s:** %s", humanizeKey(k), params[k]))
	}
	return sec
}

// summarySection reflows the narrative, line by line, into markdown.
func summarySection(text string) Section {
	sec := Section{Kind: SectionSummary, Title: "Summary"}
	title := ""
	for _, line := range strings.Split(text, "\n") {
		switch ClassifyLine(line) {
		case LineBlank:
			sec.Lines = append(sec.Lines, "")
		case LineHeading:
			h := HeadingText(line)
			if h == "" {
				continue // underline row
			}
			if title == "" && strings.HasSuffix(strings.ToUpper(h), "PRODUCTIVITY REPORT") {
				// the narrative's own document title duplicates ours
				title = h
				continue
			}
			sec.Lines = append(sec.Lines, "### "+titleCaseHeading(h))
		case LineBullet:
			sec.Lines = append(sec.Lines, "- "+BulletText(line))
		case LineNumbered, LineKeyValue, LineParagraph:
			sec.Lines = append(sec.Lines, strings.TrimSpace(line))
		}
	}
	return sec
}

func metricsSection(st *stats.PeriodStatistics) Section {
	rows := [][]string{
		{"Metric", "Value", "Insight"},
		{"Total Tasks", fmt.Sprintf("%d", st.TotalTasks), ""},
		{"Completed Tasks", fmt.Sprintf("%d", st.CompletedTasks), ""},
		{"Completion Rate", fmt.Sprintf("%.2f%%", st.CompletionRate), rateInsight(st.CompletionRate)},
		{"In Progress", fmt.Sprintf("%d", st.InProgressTasks), ""},
		{"Pending", fmt.Sprintf("%d", st.PendingTasks), ""},
		{"Overdue", fmt.Sprintf("%d", st.OverdueTasks), overdueInsight(st.OverdueTasks)},
		{"Status Changes", fmt.Sprintf("%d", st.StatusChanges), ""},
	}
	if st.AvgCompletionHours > 0 {
		rows = append(rows, []string{"Avg Completion Time", fmt.Sprintf("%.2f hours", st.AvgCompletionHours), ""})
	}
	if st.MostProductiveDay.Day != "N/A" {
		rows = append(rows,
			[]string{"Most Productive Day", fmt.Sprintf("%s (%d tasks)", st.MostProductiveDay.Day, st.MostProductiveDay.Count), ""},
			[]string{"Least Productive Day", fmt.Sprintf("%s (%d tasks)", st.LeastProductiveDay.Day, st.LeastProductiveDay.Count), ""},
			[]string{"Avg Tasks / Day", fmt.Sprintf("%.1f", st.AvgTasksPerDay), ""})
	}
	return Section{Kind: SectionTable, Title: "Performance Metrics", Table: rows}
}

func distributionSection(st *stats.PeriodStatistics) Section {
	rows := [][]string{{"Status", "Count"}}
	for _, s := range []task.Status{task.StatusPending, task.StatusInProgress, task.StatusCompleted, task.StatusOverdue} {
		if c, ok := st.StatusDistribution[s]; ok {
			rows = append(rows, []string{string(s), fmt.Sprintf("%d", c)})
		}
	}
	return Section{Kind: SectionTable, Title: "Status Distribution", Table: rows}
}

func insightsSection(rep *report.Report) Section {
	sec := Section{Kind: SectionList, Title: "Key Insights"}
	if rep.Stats != nil {
		st := rep.Stats
		sec.Lines = append(sec.Lines,
			fmt.Sprintf("Completion rate of %.2f%% rates as **%s**.", st.CompletionRate, rateInsight(st.CompletionRate)))
		if st.OverdueTasks > 0 {
			sec.Lines = append(sec.Lines,
				fmt.Sprintf("%d overdue tasks: **%s**.", st.OverdueTasks, overdueInsight(st.OverdueTasks)))
		}
	}
	switch rep.Type {
	case report.TypeDaily:
		sec.Lines = append(sec.Lines,
			"Review unfinished tasks before planning tomorrow.",
			"Short daily reviews keep small tasks from accumulating.")
	case report.TypeWeekly:
		sec.Lines = append(sec.Lines,
			"Compare this week's completion rate against last week's to spot trends.",
			"Schedule focused work on the days that historically produce the most output.")
	case report.TypeMonthly:
		sec.Lines = append(sec.Lines,
			"Monthly reviews are the right cadence for adjusting long-term goals.",
			"Consider archiving tasks that stayed pending the whole month.")
	default:
		sec.Lines = append(sec.Lines,
			"Custom parameter filters work best when reviewed against the full task set.")
	}
	sec.Lines = append(sec.Lines,
		"Skills exercised: prioritization, time management, follow-through.")
	return sec
}

// visualizationSection is a placeholder grid for chart embedding.
func visualizationSection(t report.Type) Section {
	rows := [][]string{
		{"Chart", "Status"},
		{"Completion Trend", "pending data export"},
		{"Status Breakdown", "pending data export"},
	}
	if t == report.TypeWeekly || t == report.TypeMonthly {
		rows = append(rows, []string{"Daily Task Load", "pending data export"})
	}
	return Section{Kind: SectionTable, Title: "Visualizations", Table: rows}
}

func taskSections(details []report.TaskDetail) []Section {
	total := len(details)
	shown := details
	if total > maxTaskDetails {
		shown = details[:maxTaskDetails]
	}

	head := Section{Kind: SectionParagraph, Title: "Task Details"}
	if total > maxTaskDetails {
		head.Lines = []string{fmt.Sprintf("Showing %d of %d tasks.", maxTaskDetails, total)}
	}

	out := []Section{head}
	for _, d := range shown {
		sec := Section{
			Kind:  SectionTable,
			Title: fmt.Sprintf("%s (%s)", d.Task.Title, d.Task.Status),
		}
		if d.Task.Description != "" {
			sec.Lines = []string{d.Task.Description}
		}
		rows := [][]string{{"When", "Status", "Note"}}
		for _, ev := range d.History {
			when := "unknown"
			if !ev.Timestamp.IsZero() {
				when = ev.Timestamp.Format("2006-01-02 15:04")
			}
			rows = append(rows, []string{when, string(ev.Status), ev.Note})
		}
		if len(rows) > 1 {
			sec.Table = rows
		} else {
			sec.Kind = SectionParagraph
			sec.Lines = append(sec.Lines, "No status history recorded.")
		}
		out = append(out, sec)
	}
	return out
}

func notesSection(notes []task.StatusEvent) Section {
	total := len(notes)
	if total > maxNoteEntries {
		notes = notes[:maxNoteEntries]
	}
	sec := Section{Kind: SectionList, Title: "Status Notes"}
	if total > maxNoteEntries {
		sec.Lines = append(sec.Lines, fmt.Sprintf("Showing %d of %d notes.", maxNoteEntries, total))
	}
	for _, n := range notes {
		date := "unknown date"
		if !n.Timestamp.IsZero() {
			date = n.Timestamp.Format("2006-01-02")
		}
		sec.Lines = append(sec.Lines, fmt.Sprintf("**[%s] %s:** %s", n.Status, date, n.Note))
	}
	return sec
}

func footerSection(rep *report.Report) Section {
	return Section{
		Kind: SectionParagraph,
		Lines: []string{
			"---",
			fmt.Sprintf("*Generated by reportgen on %s.*", rep.GeneratedAt.Format("2006-01-02")),
		},
	}
}

// Render emits the sections as a markdown document.
func Render(sections []Section) string {
	var sb strings.Builder
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch sec.Kind {
		case SectionHeader:
			fmt.Fprintf(&sb, "# %s\n\n", sec.Title)
			for _, l := range sec.Lines {
				sb.WriteString(l + "  \n")
			}
		case SectionTable:
			if sec.Title != "" {
				fmt.Fprintf(&sb, "## %s\n\n", sec.Title)
			}
			for _, l := range sec.Lines {
				sb.WriteString(l + "\n\n")
			}
			renderTable(&sb, sec.Table)
		case SectionList:
			if sec.Title != "" {
				fmt.Fprintf(&sb, "## %s\n\n", sec.Title)
			}
			for _, l := range sec.Lines {
				sb.WriteString("- " + l + "\n")
			}
		case SectionSummary, SectionParagraph:
			if sec.Title != "" {
				fmt.Fprintf(&sb, "## %s\n\n", sec.Title)
			}
			for _, l := range sec.Lines {
				sb.WriteString(l + "\n")
			}
		}
	}
	return sb.String()
}

func renderTable(sb *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	for i, row := range rows {
		sb.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
		if i == 0 {
			sep := make([]string, len(row))
			for j := range sep {
				sep[j] = "---"
			}
			sb.WriteString("| " + strings.Join(sep, " | ") + " |\n")
		}
	}
}

func escapeCells(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.ReplaceAll(c, "|", "\\|")
	}
	return out
}

func rateInsight(rate float64) string {
	switch {
	case rate >= 80:
		return "Excellent"
	case rate >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

func overdueInsight(overdue int) string {
	if overdue > 0 {
		return "Attention Required"
	}
	return ""
}

func humanizeKey(k string) string {
	parts := strings.FieldsFunc(k, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func titleCaseHeading(h string) string {
	words := strings.Fields(strings.ToLower(h))
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
