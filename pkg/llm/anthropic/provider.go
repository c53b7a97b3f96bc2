package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sales-assistant-be/pkg/llm"
)

const (
	apiURL           = "https://api.anthropic.com/v1/messages"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 1024
)

type AnthropicProvider struct {
	APIKey    string
	ModelName string
	Client    *http.Client
}

// Ensure AnthropicProvider implements LLMProvider
var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(apiKey, modelName string) *AnthropicProvider {
	return &AnthropicProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	Model   string                  `json:"model"`
	Content []anthropicContentBlock `json:"content"`
	Usage   anthropicUsage          `json:"usage"`
	Error   *anthropicError         `json:"error,omitempty"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// --- Interface Implementation ---

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.ChatResult, error) {
	options := &llm.Options{
		Temperature: 0.7,
		MaxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	// The Messages API takes the system prompt out of band
	var system string
	messages := make([]anthropicMessage, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role == "system" {
			system = msg.Content
			continue
		}
		if role == "model" {
			role = "assistant"
		}
		messages = append(messages, anthropicMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	reqBody := anthropicRequest{
		Model:       model,
		System:      system,
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(resBytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse anthropic response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("anthropic API error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return nil, fmt.Errorf("anthropic API returned status %d", res.StatusCode)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &llm.ChatResult{
		Text:         text,
		Model:        parsed.Model,
		InputTokens:  parsed.Usage.InputTokens,
		OutputTokens: parsed.Usage.OutputTokens,
	}, nil
}
