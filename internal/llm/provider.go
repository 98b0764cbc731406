// Package llm orchestrates interchangeable text-generation backends with
// ordered fallback. Providers are thin HTTP clients; all retry policy lives
// in the Orchestrator.
package llm

import (
	"context"
	"time"
)

// Request is one generation request: a system prompt describing the task and
// the user prompt carrying the description.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Usage holds token accounting reported by a backend, when available.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerationResult is the immutable outcome of one successful provider call.
type GenerationResult struct {
	RequestID    string
	Content      string
	Provider     string
	ProviderName string
	Model        string
	Duration     time.Duration
	Usage        *Usage
}

// Provider is one interchangeable text-generation backend.
type Provider interface {
	// ID is the short identifier used for ordering and preferred-provider
	// selection (groq, openrouter, gemini, ollama).
	ID() string
	// Name is the human-readable display name.
	Name() string
	// Generate performs a single bounded generation call. Credentials are
	// consulted here, at invocation time, never at construction.
	Generate(ctx context.Context, req Request) (*GenerationResult, error)
}
