package narrative

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/stats"
	"github.com/data2paper/reportgen/internal/task"
)

const systemPrompt = `You are a professional productivity analyst. Write clear, data-driven reports with exactly the sections requested. Plain text only, no markdown code blocks.`

const dailyPromptTemplate = `As an AI Productivity Analyst, generate a comprehensive daily productivity report for %[1]s.

USER PROFILE:
Name: %[1]s
Role: %[2]s

TODAY'S PRODUCTIVITY SNAPSHOT:
- Total Tasks: %[3]d
- Completed Tasks: %[4]d
- Completion Rate: %[5]s%%
- Status Distribution: %[6]s
- Status Changes: %[7]d

TODAY'S TASK PORTFOLIO:
%[8]s

CRITICAL INSIGHTS FROM STATUS NOTES:
%[9]s

INSTRUCTIONS:
1. Provide a professional executive summary (2-3 sentences) highlighting today's key achievements and areas for improvement
2. Analyze productivity patterns and identify factors contributing to success or challenges
3. Offer 3 specific, actionable recommendations for tomorrow based on today's performance
4. Predict potential challenges for tomorrow based on today's unfinished tasks
5. Suggest a focus area for tomorrow that aligns with the user's role and current task load
6. Use a professional, encouraging tone with data-driven insights
7. Format the response with clear sections: Executive Summary, Performance Analysis, Tomorrow's Recommendations, Focus Area`

const weeklyPromptTemplate = `As an AI Productivity Consultant, generate a comprehensive weekly productivity analysis for %[1]s, who works as a %[2]s.

USER PROFILE:
Name: %[1]s
Role: %[2]s

WEEKLY PERFORMANCE DASHBOARD:
- Total Tasks Managed: %[3]d
- Tasks Completed: %[4]d
- Completion Rate: %[5]s%%
- Status Distribution: %[6]s
- Status Updates: %[7]d
- Average Completion Time: %[8]s hours

PRODUCTIVITY PATTERNS ANALYSIS:
- Most Productive Day: %[9]s (%[10]d tasks)
- Least Productive Day: %[11]s (%[12]d tasks)
- Average Daily Task Load: %[13]s tasks

SIGNIFICANT TASKS THIS WEEK:
%[14]s

CRITICAL INSIGHTS FROM STATUS NOTES:
%[15]s

INSTRUCTIONS:
1. Provide a professional executive summary (3-4 sentences) highlighting this week's key achievements and productivity trends
2. Analyze productivity patterns and identify factors contributing to peak performance days vs. low performance days
3. Offer 4 specific, actionable recommendations for next week based on this week's performance
4. Identify skill development opportunities based on task types and challenges encountered
5. Predict potential challenges for next week based on unfinished tasks and patterns
6. Suggest a strategic focus area for next week that aligns with the user's role and long-term goals
7. Include a brief SWOT analysis (Strengths, Weaknesses, Opportunities, Threats) based on the week's data
8. Use a professional, data-driven tone with insights tailored to the user's role
9. Format the response with clear sections: Executive Summary, Productivity Analysis, Next Week Recommendations, Strategic Focus, SWOT Analysis`

const monthlyPromptTemplate = `As an AI Productivity Strategist, generate a comprehensive monthly productivity review for %[1]s, who works as a %[2]s.

USER PROFILE:
Name: %[1]s
Role: %[2]s

MONTHLY PERFORMANCE OVERVIEW:
- Total Tasks Managed: %[3]d
- Tasks Completed: %[4]d
- Completion Rate: %[5]s%%
- Status Distribution: %[6]s
- Status Updates: %[7]d
- Average Completion Time: %[8]s hours

PRODUCTIVITY TREND ANALYSIS:
- Most Productive Day: %[9]s (%[10]d tasks)
- Least Productive Day: %[11]s (%[12]d tasks)
- Average Daily Task Load: %[13]s tasks

NOTABLE MONTHLY ACHIEVEMENTS:
%[14]s

CRITICAL INSIGHTS FROM STATUS NOTES:
%[15]s

INSTRUCTIONS:
1. Provide a professional executive summary (4-5 sentences) highlighting this month's key achievements and overall productivity trends
2. Analyze monthly productivity patterns and identify consistent high-performance and low-performance periods
3. Offer 5 specific, strategic recommendations for next month based on this month's performance
4. Identify skill development opportunities based on task types and challenges encountered
5. Predict potential challenges for next month based on unfinished tasks and patterns
6. Suggest quarterly goals that align with the user's role and long-term objectives
7. Include a comprehensive SWOT analysis (Strengths, Weaknesses, Opportunities, Threats) based on the month's data
8. Recommend process improvements to enhance productivity and efficiency
9. Use a professional, strategic tone with insights tailored to the user's role
10. Format the response with clear sections: Executive Summary, Monthly Analysis, Strategic Recommendations, Quarterly Goals, SWOT Analysis, Process Improvements`

const customPromptTemplate = `As an AI Productivity Analyst, generate a custom productivity report for %[1]s, who works as a %[2]s.

USER PROFILE:
Name: %[1]s
Role: %[2]s

CUSTOM REPORT PARAMETERS:
%[3]s

IDENTIFIED TASKS:
%[4]s

INSTRUCTIONS:
1. Provide a professional executive summary (3-4 sentences) highlighting key findings based on the custom parameters
2. Analyze the tasks according to the specified parameters
3. Offer specific, actionable recommendations based on the custom analysis
4. Identify patterns or trends in the filtered task set
5. Suggest improvements or next steps based on the custom parameters
6. Use a professional, analytical tone with insights tailored to the custom parameters
7. Format the response with clear sections: Executive Summary, Parameter Analysis, Recommendations, Next Steps`

// buildPrompt renders the period-specific prompt for the external service.
func buildPrompt(req Request, budget genBudget) string {
	st := statsOrZero(req.Stats)
	name := req.User.DisplayName()
	role := req.User.DisplayRole()
	tasks := formatTasksBrief(req.Tasks, budget.taskCap)
	notes := formatNotes(st.AllNotes, budget.noteCap)

	switch req.Type {
	case report.TypeDaily:
		return fmt.Sprintf(dailyPromptTemplate,
			name, role,
			st.TotalTasks, st.CompletedTasks, formatNumber(st.CompletionRate),
			formatDistribution(st.StatusDistribution), st.StatusChanges,
			tasks, notes)
	case report.TypeWeekly:
		return fmt.Sprintf(weeklyPromptTemplate,
			name, role,
			st.TotalTasks, st.CompletedTasks, formatNumber(st.CompletionRate),
			formatDistribution(st.StatusDistribution), st.StatusChanges,
			formatNumber(st.AvgCompletionHours),
			st.MostProductiveDay.Day, st.MostProductiveDay.Count,
			st.LeastProductiveDay.Day, st.LeastProductiveDay.Count,
			formatNumber(st.AvgTasksPerDay),
			tasks, notes)
	case report.TypeMonthly:
		return fmt.Sprintf(monthlyPromptTemplate,
			name, role,
			st.TotalTasks, st.CompletedTasks, formatNumber(st.CompletionRate),
			formatDistribution(st.StatusDistribution), st.StatusChanges,
			formatNumber(st.AvgCompletionHours),
			st.MostProductiveDay.Day, st.MostProductiveDay.Count,
			st.LeastProductiveDay.Day, st.LeastProductiveDay.Count,
			formatNumber(st.AvgTasksPerDay),
			tasks, notes)
	default:
		return fmt.Sprintf(customPromptTemplate,
			name, role, formatParameters(req.Parameters), tasks)
	}
}

// statsOrZero guards every statistic access in prompt and fallback
// rendering: a missing statistics object reads as all zeros.
func statsOrZero(st *stats.PeriodStatistics) *stats.PeriodStatistics {
	if st == nil {
		return &stats.PeriodStatistics{
			MostProductiveDay:  stats.DayCount{Day: "N/A"},
			LeastProductiveDay: stats.DayCount{Day: "N/A"},
		}
	}
	return st
}

// formatNumber renders a float without trailing zeros (100 not 100.00).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTasksBrief renders tasks in one-line form: "1. Title [Status]".
func formatTasksBrief(details []report.TaskDetail, limit int) string {
	if len(details) == 0 {
		return "No tasks found."
	}
	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}

	var sb strings.Builder
	for i, d := range details {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s [%s]", i+1, d.Task.Title, d.Task.Status)
	}
	return sb.String()
}

// formatNotes renders status notes as "1. [Status] 2006-01-02: text".
func formatNotes(notes []task.StatusEvent, limit int) string {
	if len(notes) == 0 {
		return "No status notes available."
	}
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}

	var sb strings.Builder
	for i, n := range notes {
		if i > 0 {
			sb.WriteString("\n")
		}
		date := "unknown date"
		if !n.Timestamp.IsZero() {
			date = n.Timestamp.Format("2006-01-02")
		}
		fmt.Fprintf(&sb, "%d. [%s] %s: %s", i+1, n.Status, date, n.Note)
	}
	return sb.String()
}

// statusOrder fixes the rendering order of status distributions.
var statusOrder = []task.Status{
	task.StatusPending,
	task.StatusInProgress,
	task.StatusCompleted,
	task.StatusOverdue,
}

// formatDistribution renders a status distribution as "Pending: 2, ...".
func formatDistribution(dist map[task.Status]int) string {
	if len(dist) == 0 {
		return "none"
	}
	var parts []string
	for _, s := range statusOrder {
		if c, ok := dist[s]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", s, c))
		}
	}
	return strings.Join(parts, ", ")
}

// formatParameters renders custom parameters as sorted "key: value" lines.
func formatParameters(params map[string]string) string {
	if len(params) == 0 {
		return "No specific parameters provided."
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s", k, params[k])
	}
	return sb.String()
}
