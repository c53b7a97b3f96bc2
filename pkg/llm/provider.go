package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ChatResult carries the model output plus the token accounting the usage
// tracker needs. Providers that do not report usage leave the counts at zero.
type ChatResult struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(max int) Option {
	return func(o *Options) {
		o.MaxTokens = max
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend. A system prompt is
// passed as the first Message with role "system"; providers that take the
// system prompt out of band (Anthropic) lift it from the history themselves.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (*ChatResult, error)

	// Name returns the provider identifier used in usage records
	Name() string
}
