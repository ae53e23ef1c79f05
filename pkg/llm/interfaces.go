// Package llm provides clients for OpenAI-compatible and Anthropic
// text-generation endpoints behind a single Generator interface.
package llm

import "context"

// GenerateOptions bound a single completion call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces a text completion for a prompt. Implementations return
// *Error values so callers can check retryability.
type Generator interface {
	// Generate returns the raw completion text. No structure is guaranteed;
	// callers impose their own parsing.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Model returns the configured model name.
	Model() string
}

// Ensure both clients implement Generator at compile time.
var (
	_ Generator = (*Client)(nil)
	_ Generator = (*AnthropicClient)(nil)
	_ Generator = (*MockGenerator)(nil)
)
