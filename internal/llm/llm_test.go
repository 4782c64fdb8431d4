package llm

import (
	"testing"
)

func TestNewClient_UnsupportedProvider(t *testing.T) {
	if _, err := NewClient("bard", "model", ""); err == nil {
		t.Fatal("expected an error for an unsupported provider")
	}
}

func TestNewClient_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewClient("openai", "gpt-4o", ""); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestNewClient_OpenAIWithKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	c, err := NewClient("", "", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c == nil {
		t.Fatal("expected a client")
	}
}

func TestNewClient_LMStudioAliases(t *testing.T) {
	t.Setenv("LMSTUDIO_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	for _, alias := range []string{"lmstudio", "lm-studio", "llmstudio"} {
		if _, err := NewClient(alias, "local-model", ""); err != nil {
			t.Errorf("NewClient(%q): %v", alias, err)
		}
	}
}

func TestToOpenAIMessages(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	}
	got := toOpenAIMessages(messages)
	if len(got) != 3 {
		t.Fatalf("got %d messages, want 3", len(got))
	}
}
