package postprocess

import (
	"strings"

	"sales-assistant-be/pkg/rag/prompt"
	"sales-assistant-be/pkg/store"
)

const (
	maxCitations       = 5
	citationSnippetLen = 150
)

// Processor turns a raw model response plus the passages it was
// grounded on into the final annotated answer.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Process(raw string, passages []store.Passage, query string) store.Answer {
	content := FormatHTML(raw)

	// Attach document previews when retrieval found anything.
	if len(passages) > 0 {
		if previews := prompt.DocumentPreviews(passages); previews != "" {
			content += "\n\n<h3>📋 Available Documents</h3>\n" + previews
		}
	}

	return store.Answer{
		Response:      content,
		Sources:       Citations(passages),
		ActionItems:   ExtractActionItems(content),
		FollowupTasks: ExtractFollowupTasks(content),
		Suggestions:   Suggestions(query, passages),
	}
}

// Citations maps the top passages to user-facing source references.
func Citations(passages []store.Passage) []store.Citation {
	limit := len(passages)
	if limit > maxCitations {
		limit = maxCitations
	}

	citations := make([]store.Citation, 0, limit)
	for _, passage := range passages[:limit] {
		name := passage.Metadata.DocumentName
		if name == "" {
			name = "Document"
		}
		url := passage.Metadata.WebViewLink
		if url == "" {
			url = "/documents/" + passage.DocumentID
		}
		docType := passage.Metadata.MimeType
		if docType == "" {
			docType = "document"
		}

		citations = append(citations, store.Citation{
			Name:           name,
			URL:            url,
			RelevanceScore: passage.Score,
			Snippet:        citationSnippet(passage.Content),
			Type:           docType,
		})
	}
	return citations
}

// Suggestions proposes next steps: recovery hints when retrieval came
// up empty, deepening hints otherwise.
func Suggestions(query string, passages []store.Passage) []string {
	if len(passages) == 0 {
		return []string{
			"Try searching with different keywords",
			"Upload relevant documents to the system",
			"Check the FAQ Knowledge Base",
		}
	}
	return []string{
		"Review the found documents for more details",
		"Save important information to your personal folder",
		"Create a summary for your client",
	}
}

func citationSnippet(content string) string {
	runes := []rune(content)
	if len(runes) > citationSnippetLen {
		return strings.TrimSpace(string(runes[:citationSnippetLen])) + "..."
	}
	return strings.TrimSpace(content)
}
