package driven

import "context"

// LLMService produces natural-language text from a prompt. Treated as a
// black box: output may differ between calls on identical input, and calls
// may fail transiently. The assistant owns retry policy, not the adapter.
type LLMService interface {
	// Generate produces a completion from a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the generation model identifier.
	ModelName() string

	// Ping makes a lightweight request to verify the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}
