package cli

import (
	"github.com/fatih/color"

	"github.com/data2paper/reportgen/internal/task"
)

// Color definitions for consistent styling across the CLI.
var (
	colorHeader    = color.New(color.Bold)
	colorCompleted = color.New(color.FgGreen)
	colorActive    = color.New(color.FgCyan)
	colorOverdue   = color.New(color.FgRed, color.Bold)
	colorWarn      = color.New(color.FgYellow)
	colorMuted     = color.New(color.FgWhite, color.Faint)
)

func warnLabel() string {
	return colorWarn.Sprint("warning:")
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatStatus colors a status label by its state.
func formatStatus(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return colorCompleted.Sprint(string(s))
	case task.StatusInProgress:
		return colorActive.Sprint(string(s))
	case task.StatusOverdue:
		return colorOverdue.Sprint(string(s))
	default:
		return string(s)
	}
}
