package docgen

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"blank", "   ", LineBlank},
		{"known heading", "EXECUTIVE SUMMARY", LineHeading},
		{"heading with suffix", "SWOT ANALYSIS (WEEK 11)", LineHeading},
		{"markdown heading", "## Performance", LineHeading},
		{"underline row", "===============", LineHeading},
		{"dash underline", "---------------", LineHeading},
		{"all caps short", "TASK METRICS", LineHeading},
		{"bullet dot", "• Total Tasks: 4", LineBullet},
		{"bullet dash", "- Review pending items", LineBullet},
		{"bullet star", "* Review pending items", LineBullet},
		{"numbered", "1. Finish the draft", LineNumbered},
		{"numbered two digits", "12. Finish the draft", LineNumbered},
		{"key value", "Prepared for: Ana", LineKeyValue},
		{"late colon is prose", "The task that was finished at the very end of the day: done", LineParagraph},
		{"trailing colon", "Strengths:", LineParagraph},
		{"plain prose", "This week went well overall.", LineParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLine(tt.line); got != tt.want {
				t.Errorf("ClassifyLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestHeadingText(t *testing.T) {
	if got := HeadingText("## Performance Analysis"); got != "Performance Analysis" {
		t.Errorf("HeadingText = %q", got)
	}
	if got := HeadingText("======"); got != "" {
		t.Errorf("underline row should strip to empty, got %q", got)
	}
}

func TestBulletText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"• Total Tasks: 4", "Total Tasks: 4"},
		{"- item", "item"},
		{"* item", "item"},
	}
	for _, tt := range tests {
		if got := BulletText(tt.in); got != tt.want {
			t.Errorf("BulletText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
