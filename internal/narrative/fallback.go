package narrative

import (
	"fmt"
	"strings"
	"time"

	"github.com/data2paper/reportgen/internal/report"
)

// fallback renders a deterministic plain-text narrative from the
// aggregated statistics alone. It is used whenever the external
// service is disabled, unreachable, or returns an empty response.
func (s *Synthesizer) fallback(req Request) string {
	switch req.Type {
	case report.TypeDaily:
		return s.fallbackDaily(req)
	case report.TypeWeekly:
		return s.fallbackWeekly(req)
	case report.TypeMonthly:
		return s.fallbackMonthly(req)
	default:
		return s.fallbackCustom(req)
	}
}

func (s *Synthesizer) fallbackDaily(req Request) string {
	st := statsOrZero(req.Stats)
	var sb strings.Builder

	writeHeader(&sb, "DAILY PRODUCTIVITY REPORT", req.User.DisplayName(), req.User.DisplayRole(), "Today", s.now())

	sb.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&sb, "Today %s worked on %d tasks with a completion rate of %s%%.\n",
		req.User.DisplayName(), st.TotalTasks, formatNumber(st.CompletionRate))
	fmt.Fprintf(&sb, "%d tasks were completed, %d are in progress, and %d remain pending.\n\n",
		st.CompletedTasks, st.InProgressTasks, st.PendingTasks)

	writeMetrics(&sb, req)

	sb.WriteString("RECENT ACTIVITIES\n")
	sb.WriteString(formatTasksBrief(req.Tasks, 10))
	sb.WriteString("\n\n")

	writeNotes(&sb, req, 15)

	sb.WriteString("KEY INSIGHTS\n")
	fmt.Fprintf(&sb, "1. Completion rate of %s%% %s the 80%% target.\n",
		formatNumber(st.CompletionRate), meetsOrMisses(st.CompletionRate, 80))
	fmt.Fprintf(&sb, "2. %d status changes were recorded, reflecting active task management.\n", st.StatusChanges)
	if st.OverdueTasks > 0 {
		fmt.Fprintf(&sb, "3. %d tasks are overdue and need immediate attention.\n", st.OverdueTasks)
	} else {
		sb.WriteString("3. No overdue tasks. Deadlines are under control.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString("- Prioritize pending tasks at the start of tomorrow.\n")
	sb.WriteString("- Review in-progress tasks for blockers before end of day.\n")
	sb.WriteString("- Keep recording status notes to preserve context.\n")

	return sb.String()
}

func (s *Synthesizer) fallbackWeekly(req Request) string {
	st := statsOrZero(req.Stats)
	var sb strings.Builder

	writeHeader(&sb, "WEEKLY PRODUCTIVITY REPORT", req.User.DisplayName(), req.User.DisplayRole(), "Last 7 Days", s.now())

	sb.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&sb, "Over the past week %s managed %d tasks with a completion rate of %s%%.\n",
		req.User.DisplayName(), st.TotalTasks, formatNumber(st.CompletionRate))
	fmt.Fprintf(&sb, "%d tasks were completed with an average completion time of %s hours.\n\n",
		st.CompletedTasks, formatNumber(st.AvgCompletionHours))

	writeMetrics(&sb, req)

	sb.WriteString("PRODUCTIVITY ANALYSIS\n")
	fmt.Fprintf(&sb, "- Most productive day: %s (%d tasks)\n", st.MostProductiveDay.Day, st.MostProductiveDay.Count)
	fmt.Fprintf(&sb, "- Least productive day: %s (%d tasks)\n", st.LeastProductiveDay.Day, st.LeastProductiveDay.Count)
	fmt.Fprintf(&sb, "- Average daily task load: %s tasks\n\n", formatNumber(st.AvgTasksPerDay))

	sb.WriteString("SIGNIFICANT TASKS\n")
	sb.WriteString(formatTasksBrief(req.Tasks, 15))
	sb.WriteString("\n\n")

	writeNotes(&sb, req, 30)

	sb.WriteString("KEY INSIGHTS\n")
	fmt.Fprintf(&sb, "1. Completion rate of %s%% %s the 80%% target.\n",
		formatNumber(st.CompletionRate), meetsOrMisses(st.CompletionRate, 80))
	fmt.Fprintf(&sb, "2. Task load varied across the week, peaking on %s.\n", st.MostProductiveDay.Day)
	fmt.Fprintf(&sb, "3. %d status changes show how actively tasks moved through the workflow.\n\n", st.StatusChanges)

	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString("- Schedule demanding work on historically productive days.\n")
	sb.WriteString("- Break down long-running tasks to reduce average completion time.\n")
	sb.WriteString("- Close out pending tasks early next week to avoid carryover.\n")
	sb.WriteString("- Review overdue items and renegotiate deadlines where needed.\n")

	return sb.String()
}

func (s *Synthesizer) fallbackMonthly(req Request) string {
	st := statsOrZero(req.Stats)
	var sb strings.Builder

	writeHeader(&sb, "MONTHLY PRODUCTIVITY REPORT", req.User.DisplayName(), req.User.DisplayRole(), "Last 30 Days", s.now())

	sb.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&sb, "This month %s managed %d tasks with an overall completion rate of %s%%.\n",
		req.User.DisplayName(), st.TotalTasks, formatNumber(st.CompletionRate))
	fmt.Fprintf(&sb, "%d tasks were completed with an average completion time of %s hours,\n",
		st.CompletedTasks, formatNumber(st.AvgCompletionHours))
	fmt.Fprintf(&sb, "and an average of %s tasks were created per active day.\n\n",
		formatNumber(st.AvgTasksPerDay))

	writeMetrics(&sb, req)

	sb.WriteString("PRODUCTIVITY ANALYSIS\n")
	fmt.Fprintf(&sb, "- Most productive day: %s (%d tasks)\n", st.MostProductiveDay.Day, st.MostProductiveDay.Count)
	fmt.Fprintf(&sb, "- Least productive day: %s (%d tasks)\n", st.LeastProductiveDay.Day, st.LeastProductiveDay.Count)
	fmt.Fprintf(&sb, "- Average daily task load: %s tasks\n\n", formatNumber(st.AvgTasksPerDay))

	sb.WriteString("NOTABLE TASKS\n")
	sb.WriteString(formatTasksBrief(req.Tasks, 20))
	sb.WriteString("\n\n")

	writeNotes(&sb, req, 50)

	sb.WriteString("SWOT ANALYSIS\n")
	sb.WriteString("Strengths:\n")
	fmt.Fprintf(&sb, "- %d tasks completed this month.\n", st.CompletedTasks)
	sb.WriteString("Weaknesses:\n")
	if st.OverdueTasks > 0 {
		fmt.Fprintf(&sb, "- %d tasks slipped past their deadline.\n", st.OverdueTasks)
	} else {
		fmt.Fprintf(&sb, "- %d tasks remain pending without progress.\n", st.PendingTasks)
	}
	sb.WriteString("Opportunities:\n")
	fmt.Fprintf(&sb, "- Concentrating effort on high-output days like %s.\n", st.MostProductiveDay.Day)
	sb.WriteString("Threats:\n")
	fmt.Fprintf(&sb, "- %d tasks still in progress risk carrying over into next month.\n\n", st.InProgressTasks)

	sb.WriteString("STRATEGIC RECOMMENDATIONS\n")
	sb.WriteString("- Set a weekly completion target to keep the monthly rate above 80%.\n")
	sb.WriteString("- Triage overdue and long-running tasks at the start of each week.\n")
	sb.WriteString("- Balance daily task load to smooth out low-output days.\n")
	sb.WriteString("- Continue documenting status notes for future reviews.\n")
	sb.WriteString("- Archive or reschedule stale pending tasks.\n\n")

	sb.WriteString("QUARTERLY GOALS\n")
	sb.WriteString("1. Raise the completion rate toward 90%.\n")
	sb.WriteString("2. Reduce average completion time by a quarter.\n")
	sb.WriteString("3. Keep overdue tasks at zero for a full month.\n")

	return sb.String()
}

func (s *Synthesizer) fallbackCustom(req Request) string {
	st := statsOrZero(req.Stats)
	var sb strings.Builder

	writeHeader(&sb, "CUSTOM PRODUCTIVITY REPORT", req.User.DisplayName(), req.User.DisplayRole(), "Custom", s.now())

	sb.WriteString("REPORT PARAMETERS\n")
	sb.WriteString(formatParameters(req.Parameters))
	sb.WriteString("\n\n")

	sb.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&sb, "This custom report covers %d tasks for %s with a completion rate of %s%%.\n\n",
		st.TotalTasks, req.User.DisplayName(), formatNumber(st.CompletionRate))

	writeMetrics(&sb, req)

	sb.WriteString("IDENTIFIED TASKS\n")
	sb.WriteString(formatTasksBrief(req.Tasks, 20))
	sb.WriteString("\n\n")

	sb.WriteString("KEY INSIGHTS\n")
	fmt.Fprintf(&sb, "1. %d of %d tasks matched the requested parameters and were completed.\n",
		st.CompletedTasks, st.TotalTasks)
	fmt.Fprintf(&sb, "2. %d status changes were recorded across the matched tasks.\n\n", st.StatusChanges)

	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString("- Refine the report parameters to narrow or widen the task set as needed.\n")
	sb.WriteString("- Follow up on matched tasks that are still pending or in progress.\n")

	return sb.String()
}

func writeHeader(sb *strings.Builder, title, name, role, period string, now time.Time) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")
	fmt.Fprintf(sb, "Prepared for: %s\n", name)
	fmt.Fprintf(sb, "Role: %s\n", role)
	fmt.Fprintf(sb, "Period: %s\n", period)
	fmt.Fprintf(sb, "Report Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))
}

func writeMetrics(sb *strings.Builder, req Request) {
	st := statsOrZero(req.Stats)
	sb.WriteString("TASK METRICS\n")
	fmt.Fprintf(sb, "• Total Tasks: %d\n", st.TotalTasks)
	fmt.Fprintf(sb, "• Completed: %d\n", st.CompletedTasks)
	fmt.Fprintf(sb, "• In Progress: %d\n", st.InProgressTasks)
	fmt.Fprintf(sb, "• Pending: %d\n", st.PendingTasks)
	fmt.Fprintf(sb, "• Overdue: %d\n", st.OverdueTasks)
	fmt.Fprintf(sb, "• Completion Rate: %s%%\n", formatNumber(st.CompletionRate))
	fmt.Fprintf(sb, "• Status Changes: %d\n\n", st.StatusChanges)
}

func writeNotes(sb *strings.Builder, req Request, limit int) {
	st := statsOrZero(req.Stats)
	if len(st.AllNotes) == 0 {
		return
	}
	sb.WriteString("STATUS NOTES\n")
	sb.WriteString(formatNotes(st.AllNotes, limit))
	sb.WriteString("\n\n")
}

func meetsOrMisses(v, target float64) string {
	if v >= target {
		return "meets"
	}
	return "falls below"
}
