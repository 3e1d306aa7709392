package driven

import "context"

// GenerateOptions holds generation parameters for an LLM call.
type GenerateOptions struct {
	// MaxTokens limits the completion length. Zero means model default.
	MaxTokens int

	// Temperature controls sampling randomness. Zero means model default.
	Temperature float64

	// StopWords stop generation when emitted.
	StopWords []string
}

// LLMService produces text completions. Backed by a local Ollama
// instance; treated as an opaque prompt-in, text-out collaborator.
type LLMService interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the configured model identifier.
	ModelName() string

	// Ping verifies the service is reachable without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
