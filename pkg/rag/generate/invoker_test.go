package generate

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/rag/usage"
)

type stubProvider struct {
	name   string
	result *llm.ChatResult
	err    error
	calls  int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.ChatResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubProvider) Name() string { return s.name }

type recordingTracker struct {
	mu      sync.Mutex
	records []usage.Record
}

func (r *recordingTracker) LogUsage(userId string, record usage.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

func (r *recordingTracker) snapshot() []usage.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]usage.Record(nil), r.records...)
}

func newInvoker(primary, secondary llm.LLMProvider, tracker UsageLogger) *Invoker {
	return NewInvoker(primary, secondary, tracker, time.Second, log.New(io.Discard, "", 0))
}

func TestInvokeUsesPrimary(t *testing.T) {
	primary := &stubProvider{name: "anthropic", result: &llm.ChatResult{Text: "hi", Model: "m", InputTokens: 10, OutputTokens: 5}}
	secondary := &stubProvider{name: "openai"}
	tracker := &recordingTracker{}

	got, err := newInvoker(primary, secondary, tracker).Invoke(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got.Text != "hi" {
		t.Errorf("Text = %q, want primary result", got.Text)
	}
	if secondary.calls != 0 {
		t.Error("secondary called despite primary success")
	}

	records := tracker.snapshot()
	if len(records) != 1 || !records[0].Success || records[0].Provider != "anthropic" {
		t.Errorf("usage records = %+v, want one successful anthropic record", records)
	}
}

func TestInvokeFallsBackOnPrimaryError(t *testing.T) {
	primary := &stubProvider{name: "anthropic", err: errors.New("rate limited")}
	secondary := &stubProvider{name: "openai", result: &llm.ChatResult{Text: "fallback answer"}}
	tracker := &recordingTracker{}

	got, err := newInvoker(primary, secondary, tracker).Invoke(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got.Text != "fallback answer" {
		t.Errorf("Text = %q, want fallback result", got.Text)
	}

	records := tracker.snapshot()
	if len(records) != 2 {
		t.Fatalf("got %d usage records, want both attempts", len(records))
	}
	if records[0].Success || !records[1].Success {
		t.Errorf("records = %+v, want failed primary then successful fallback", records)
	}
}

func TestInvokeNoProviders(t *testing.T) {
	_, err := newInvoker(nil, nil, &recordingTracker{}).Invoke(context.Background(), "u1", nil)
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("err = %v, want ErrNoProvider", err)
	}
}

func TestInvokeOnlySecondaryConfigured(t *testing.T) {
	secondary := &stubProvider{name: "openai", result: &llm.ChatResult{Text: "answer"}}

	got, err := newInvoker(nil, secondary, &recordingTracker{}).Invoke(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got.Text != "answer" {
		t.Errorf("Text = %q, want secondary result", got.Text)
	}
}

func TestInvokeBothFail(t *testing.T) {
	primary := &stubProvider{name: "anthropic", err: errors.New("down")}
	secondary := &stubProvider{name: "openai", err: errors.New("also down")}

	_, err := newInvoker(primary, secondary, &recordingTracker{}).Invoke(context.Background(), "u1", nil)
	if err == nil {
		t.Fatal("expected error when both providers fail")
	}
	if errors.Is(err, ErrNoProvider) {
		t.Error("provider failure must not be reported as ErrNoProvider")
	}
}
