package cli

import (
	"testing"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"status=Completed", "project = alpha "})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if got["status"] != "Completed" {
		t.Errorf("status = %q", got["status"])
	}
	if got["project"] != "alpha" {
		t.Errorf("project = %q, want trimmed value", got["project"])
	}
}

func TestParseParams_Empty(t *testing.T) {
	got, err := parseParams(nil)
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestParseParams_Invalid(t *testing.T) {
	for _, raw := range []string{"no-equals", "=value", "  =x"} {
		if _, err := parseParams([]string{raw}); err == nil {
			t.Errorf("parseParams(%q) should fail", raw)
		}
	}
}
