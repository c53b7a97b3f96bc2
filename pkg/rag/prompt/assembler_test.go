package prompt

import (
	"strings"
	"testing"

	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/store"
)

func TestMessagesLayout(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
		{Role: "weird", Content: "coerced"},
	}
	a := NewAssembler("Sales Agent", "what about rates?", nil, history)

	messages := a.Messages()
	if len(messages) != 5 {
		t.Fatalf("got %d messages, want system + 3 history + query", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("first message role = %s, want system", messages[0].Role)
	}
	if messages[3].Role != "user" {
		t.Errorf("unknown history role mapped to %s, want user", messages[3].Role)
	}
	last := messages[len(messages)-1]
	if last.Role != "user" || last.Content != "what about rates?" {
		t.Errorf("last message = %+v, want the current query", last)
	}
}

func TestSystemPromptContainsDocumentContext(t *testing.T) {
	passages := []store.Passage{
		{
			DocumentID: "doc-1",
			Content:    "Clearent offers interchange-plus pricing\nwith monthly statements.",
			Metadata:   store.PassageMetadata{DocumentName: "Clearent Pricing Guide"},
		},
	}
	a := NewAssembler("", "clearent rates", passages, nil)

	got := a.BuildSystemPrompt()
	if !strings.Contains(got, "1. Clearent Pricing Guide:") {
		t.Error("system prompt missing numbered document context entry")
	}
	if strings.Contains(got, NoDocumentsMarker) {
		t.Error("system prompt carries the no-documents marker despite passages")
	}
	if !strings.Contains(got, "User context: Sales Agent") {
		t.Error("empty userRole did not default to Sales Agent")
	}
	if strings.Contains(got, "\nwith monthly statements") {
		t.Error("snippet kept raw newlines")
	}
}

func TestSystemPromptNoDocuments(t *testing.T) {
	a := NewAssembler("Sales Agent", "anything", nil, nil)
	if !strings.Contains(a.BuildSystemPrompt(), NoDocumentsMarker) {
		t.Error("system prompt missing no-documents marker for empty retrieval")
	}
}

func TestFormatDocumentContextCapsAtFive(t *testing.T) {
	passages := make([]store.Passage, 8)
	for i := range passages {
		passages[i] = store.Passage{Content: "content"}
	}

	got := FormatDocumentContext(passages)
	if lines := strings.Split(got, "\n"); len(lines) != 5 {
		t.Errorf("document context has %d lines, want 5", len(lines))
	}
	if !strings.Contains(got, "1. Document 1:") {
		t.Error("missing numbered fallback name for unnamed document")
	}
}

func TestDocumentPreviews(t *testing.T) {
	passages := []store.Passage{
		{DocumentID: "d1", Content: "short content", Metadata: store.PassageMetadata{DocumentName: "Rate Sheet", MimeType: "application/pdf"}},
		{DocumentID: "d2", Content: "short content", Metadata: store.PassageMetadata{MimeType: "text/plain"}},
		{DocumentID: "d3", Content: "short content"},
		{DocumentID: "d4", Content: "never shown"},
	}

	got := DocumentPreviews(passages)
	if strings.Count(got, "<div class=\"doc-preview\">") != 3 {
		t.Errorf("previews rendered %d cards, want 3", strings.Count(got, "<div class=\"doc-preview\">"))
	}
	if !strings.Contains(got, "/documents/d1") || !strings.Contains(got, "/api/documents/d1/download") {
		t.Error("preview missing view/download links")
	}
	if !strings.Contains(got, "PDF •") {
		t.Error("pdf mime type not labeled PDF")
	}
	if strings.Contains(got, "d4") {
		t.Error("previews exceeded the cap")
	}
}
