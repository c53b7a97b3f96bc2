package generate

import (
	"context"
	"errors"
	"log"
	"time"

	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/rag/usage"
)

// ErrNoProvider means neither the primary nor the fallback provider is
// configured. It is the one fatal generation error: there is nothing to
// degrade to.
var ErrNoProvider = errors.New("no llm provider configured")

// UsageLogger receives per-call accounting. Satisfied by usage.Tracker.
type UsageLogger interface {
	LogUsage(userId string, record usage.Record)
}

// Invoker calls the primary provider and falls back to the secondary on
// any error. Either provider may be nil (unconfigured).
type Invoker struct {
	primary   llm.LLMProvider
	secondary llm.LLMProvider
	tracker   UsageLogger
	timeout   time.Duration
	logger    *log.Logger
}

func NewInvoker(primary, secondary llm.LLMProvider, tracker UsageLogger, timeout time.Duration, logger *log.Logger) *Invoker {
	return &Invoker{
		primary:   primary,
		secondary: secondary,
		tracker:   tracker,
		timeout:   timeout,
		logger:    logger,
	}
}

// Invoke sends the conversation to the first available provider. A
// primary failure is logged and retried once against the secondary;
// usage is tracked fire-and-forget for every attempt that ran.
func (inv *Invoker) Invoke(ctx context.Context, userId string, messages []llm.Message) (*llm.ChatResult, error) {
	if inv.primary == nil && inv.secondary == nil {
		return nil, ErrNoProvider
	}

	if inv.primary != nil {
		result, err := inv.call(ctx, userId, inv.primary, messages)
		if err == nil {
			return result, nil
		}
		inv.logger.Printf("[WARN] Primary provider %s failed: %v", inv.primary.Name(), err)
		if inv.secondary == nil {
			return nil, err
		}
	}

	result, err := inv.call(ctx, userId, inv.secondary, messages)
	if err != nil {
		inv.logger.Printf("[ERROR] Fallback provider %s failed: %v", inv.secondary.Name(), err)
		return nil, err
	}
	return result, nil
}

func (inv *Invoker) call(ctx context.Context, userId string, provider llm.LLMProvider, messages []llm.Message) (*llm.ChatResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	started := time.Now()
	result, err := provider.Chat(callCtx, messages)
	elapsed := time.Since(started).Milliseconds()

	record := usage.Record{
		Provider:       provider.Name(),
		Operation:      "chat",
		ResponseTimeMs: elapsed,
		Success:        err == nil,
	}
	if result != nil {
		record.Model = result.Model
		record.InputTokens = result.InputTokens
		record.OutputTokens = result.OutputTokens
	}
	inv.tracker.LogUsage(userId, record)

	return result, err
}
