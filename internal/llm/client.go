// Package llm provides interfaces and implementations for LLM-backed
// narrative generation.
package llm

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenOpts bounds a single generation call. Zero values fall back to the
// provider's defaults.
type GenOpts struct {
	MaxTokens   int64
	Temperature float64
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response text.
	Chat(ctx context.Context, messages []Message, opts GenOpts) (string, error)
}
