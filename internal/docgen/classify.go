// Package docgen turns a finished report into a written document artifact.
//
// Narrative text arrives as free-form plain text. A small line classifier
// recovers its structure (headings, bullets, numbered items, key-value
// pairs) so the renderer can emit proper markdown instead of one opaque
// block.
package docgen

import (
	"strings"
	"unicode"
)

// LineKind classifies one line of narrative text.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeading
	LineBullet
	LineNumbered
	LineKeyValue
	LineParagraph
)

// headingKeywords are section titles the narrative generators emit.
// A line matching one of these (prefix, case-insensitive) is a heading
// even without any markup.
var headingKeywords = []string{
	"EXECUTIVE SUMMARY",
	"PERFORMANCE ANALYSIS",
	"PRODUCTIVITY ANALYSIS",
	"MONTHLY ANALYSIS",
	"PARAMETER ANALYSIS",
	"TASK METRICS",
	"RECENT ACTIVITIES",
	"SIGNIFICANT TASKS",
	"NOTABLE TASKS",
	"IDENTIFIED TASKS",
	"STATUS NOTES",
	"KEY INSIGHTS",
	"RECOMMENDATIONS",
	"STRATEGIC RECOMMENDATIONS",
	"TOMORROW'S RECOMMENDATIONS",
	"NEXT WEEK RECOMMENDATIONS",
	"NEXT STEPS",
	"STRATEGIC FOCUS",
	"FOCUS AREA",
	"QUARTERLY GOALS",
	"SWOT ANALYSIS",
	"PROCESS IMPROVEMENTS",
	"REPORT PARAMETERS",
}

// ClassifyLine decides how one line of narrative text should render.
func ClassifyLine(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineBlank
	}

	if isHeading(trimmed) {
		return LineHeading
	}

	if strings.HasPrefix(trimmed, "•") ||
		strings.HasPrefix(trimmed, "- ") ||
		strings.HasPrefix(trimmed, "* ") {
		return LineBullet
	}

	if isNumbered(trimmed) {
		return LineNumbered
	}

	// "Key: value" only counts when the colon sits early in the line;
	// a colon deep inside a sentence is just punctuation.
	if idx := strings.Index(trimmed, ":"); idx > 0 && idx < 30 && idx < len(trimmed)-1 {
		return LineKeyValue
	}

	return LineParagraph
}

func isHeading(trimmed string) bool {
	// Markdown-style headings pass straight through.
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	// Underline rows accompany a heading; treat them as headings so the
	// renderer can drop them.
	if strings.Trim(trimmed, "=") == "" || strings.Trim(trimmed, "-") == "" {
		return len(trimmed) >= 3
	}
	upper := strings.ToUpper(trimmed)
	for _, kw := range headingKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	// A short all-caps line reads as a heading.
	if len(trimmed) <= 40 && trimmed == upper && hasLetter(trimmed) {
		return true
	}
	return false
}

func isNumbered(trimmed string) bool {
	i := 0
	for i < len(trimmed) && unicode.IsDigit(rune(trimmed[i])) {
		i++
	}
	return i > 0 && i < len(trimmed) && trimmed[i] == '.'
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// HeadingText strips markup from a heading line. Underline rows reduce
// to the empty string.
func HeadingText(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.Trim(trimmed, "=") == "" || strings.Trim(trimmed, "-") == "" {
		return ""
	}
	trimmed = strings.TrimLeft(trimmed, "#")
	return strings.TrimSpace(trimmed)
}

// BulletText strips the bullet marker from a bullet line.
func BulletText(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "•")
	trimmed = strings.TrimPrefix(trimmed, "- ")
	trimmed = strings.TrimPrefix(trimmed, "* ")
	return strings.TrimSpace(trimmed)
}
