package postprocess

import (
	"strings"
	"testing"

	"sales-assistant-be/pkg/store"
)

func TestFormatHTMLPassThrough(t *testing.T) {
	already := "<h2>Rates</h2><ul><li>one</li></ul>"
	if got := FormatHTML(already); got != already {
		t.Errorf("HTML content was modified:\n%s", got)
	}
}

func TestFormatHTMLConvertsMarkdown(t *testing.T) {
	raw := "## Processing Rates\n\nHere are the **key numbers** you need.\n\n- Qualified: 2.25%\n- Mid-Qualified: 2.75%"

	got := FormatHTML(raw)

	for _, want := range []string{
		"<h2>Processing Rates</h2>",
		"<strong>key numbers</strong>",
		"<ul>",
		"<li>Qualified: 2.25%</li>",
		"</ul>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "##") || strings.Contains(got, "**") {
		t.Errorf("markdown markers survived formatting:\n%s", got)
	}
}

func TestFormatHTMLWrapsParagraphs(t *testing.T) {
	got := FormatHTML("First line\nsecond line\n\nNext paragraph")

	if !strings.Contains(got, "<p>First line<br>second line</p>") {
		t.Errorf("hard return not preserved as <br>:\n%s", got)
	}
	if !strings.Contains(got, "<p>Next paragraph</p>") {
		t.Errorf("second paragraph not wrapped:\n%s", got)
	}
}

func TestExtractActionItems(t *testing.T) {
	content := "Intro text\nAction: send the rate sheet\nSomething else\nTask: book a demo"

	got := ExtractActionItems(content)
	if len(got) != 2 {
		t.Fatalf("got %d action items, want 2: %+v", len(got), got)
	}
	if got[0].Task != "send the rate sheet" {
		t.Errorf("first task = %q", got[0].Task)
	}
	if got[0].Priority != "medium" || got[0].Category != "general" {
		t.Errorf("defaults = %s/%s, want medium/general", got[0].Priority, got[0].Category)
	}
}

func TestExtractActionItemsMarkersCaseInsensitive(t *testing.T) {
	content := "action: call the client tomorrow\nTODO: send the proposal\ntask: update the CRM"

	got := ExtractActionItems(content)
	if len(got) != 3 {
		t.Fatalf("got %d action items, want 3: %+v", len(got), got)
	}
	if got[0].Task != "call the client tomorrow" {
		t.Errorf("first task = %q, want lowercase marker stripped", got[0].Task)
	}
	if got[2].Task != "update the CRM" {
		t.Errorf("third task = %q", got[2].Task)
	}
}

func TestExtractFollowupTasks(t *testing.T) {
	content := strings.Join([]string{
		"We should follow up with the merchant next week.",
		"Nothing interesting here.",
		"Please call back after lunch.",
		"I'll schedule a quick meeting with underwriting.",
		"Remember to send that email to the processor.",
		"Prepare the pricing document before Friday.",
	}, "\n")

	got := ExtractFollowupTasks(content)
	if len(got) != 5 {
		t.Fatalf("got %d follow-ups, want 5: %+v", len(got), got)
	}
	for _, task := range got {
		if task.Timeframe != "within 48 hours" {
			t.Errorf("Timeframe = %q, want within 48 hours", task.Timeframe)
		}
	}
}

func TestCitations(t *testing.T) {
	long := strings.Repeat("clearent pricing detail ", 20) // > 150 chars
	passages := []store.Passage{
		{
			DocumentID: "d1",
			Content:    long,
			Score:      0.91,
			Metadata:   store.PassageMetadata{DocumentName: "Rate Sheet", WebViewLink: "/documents/d1", MimeType: "application/pdf"},
		},
		{DocumentID: "d2", Content: "short"},
	}

	got := Citations(passages)
	if len(got) != 2 {
		t.Fatalf("got %d citations, want 2", len(got))
	}
	if got[0].Name != "Rate Sheet" || got[0].RelevanceScore != 0.91 {
		t.Errorf("citation = %+v", got[0])
	}
	if !strings.HasSuffix(got[0].Snippet, "...") || len([]rune(got[0].Snippet)) > 154 {
		t.Errorf("snippet not truncated: %q", got[0].Snippet)
	}
	if got[1].Name != "Document" || got[1].URL != "/documents/d2" || got[1].Type != "document" {
		t.Errorf("fallbacks not applied: %+v", got[1])
	}
}

func TestCitationsCapAtFive(t *testing.T) {
	passages := make([]store.Passage, 9)
	if got := Citations(passages); len(got) != 5 {
		t.Errorf("got %d citations, want 5", len(got))
	}
}

func TestProcessEndToEnd(t *testing.T) {
	passages := []store.Passage{
		{DocumentID: "d1", Content: "clearent rates", Metadata: store.PassageMetadata{DocumentName: "Rate Sheet"}},
	}
	raw := "## Summary\n\n**Good news** on pricing.\n\nAction: send proposal\n\nWe should follow up on Monday."

	answer := NewProcessor().Process(raw, passages, "clearent rates")

	if !strings.Contains(answer.Response, "<h2>Summary</h2>") {
		t.Error("response not HTML formatted")
	}
	if !strings.Contains(answer.Response, "Available Documents") {
		t.Error("document previews not appended")
	}
	if len(answer.Sources) != 1 {
		t.Errorf("Sources = %+v, want one citation", answer.Sources)
	}
	if len(answer.ActionItems) != 1 || !strings.Contains(answer.ActionItems[0].Task, "send proposal") {
		t.Errorf("ActionItems = %+v", answer.ActionItems)
	}
	if len(answer.FollowupTasks) != 1 {
		t.Errorf("FollowupTasks = %+v", answer.FollowupTasks)
	}
	if len(answer.Suggestions) != 3 {
		t.Errorf("Suggestions = %v", answer.Suggestions)
	}
}

func TestProcessEmptyRetrievalSuggestions(t *testing.T) {
	answer := NewProcessor().Process("plain answer", nil, "anything")

	if strings.Contains(answer.Response, "Available Documents") {
		t.Error("previews appended with no passages")
	}
	if len(answer.Suggestions) != 3 || answer.Suggestions[0] != "Try searching with different keywords" {
		t.Errorf("Suggestions = %v, want recovery hints", answer.Suggestions)
	}
}
