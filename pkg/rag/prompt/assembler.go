package prompt

import (
	"fmt"
	"strings"

	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/store"
)

const (
	// NoDocumentsMarker is the literal the document context block carries
	// when retrieval produced nothing. The postprocessor keys off it.
	NoDocumentsMarker = "No relevant documents found."

	maxContextPassages = 5
	maxPreviewPassages = 3
	contextSnippetLen  = 200
	previewSnippetLen  = 150
)

// Assembler builds the system prompt the sales-assistant persona runs
// on: formatting contract, document context from the top passages, and
// the chat history mapped to provider messages.
type Assembler struct {
	userRole string
	query    string
	passages []store.Passage
	history  []llm.Message
}

func NewAssembler(userRole, query string, passages []store.Passage, history []llm.Message) *Assembler {
	if userRole == "" {
		userRole = "Sales Agent"
	}
	return &Assembler{
		userRole: userRole,
		query:    query,
		passages: passages,
		history:  history,
	}
}

// Messages returns the full conversation to send: system prompt first,
// then history, then the current query as the final user message.
func (a *Assembler) Messages() []llm.Message {
	messages := make([]llm.Message, 0, len(a.history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: a.BuildSystemPrompt()})

	for _, msg := range a.history {
		role := msg.Role
		if role != "user" && role != "assistant" {
			role = "user"
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	messages = append(messages, llm.Message{Role: "user", Content: a.query})
	return messages
}

func (a *Assembler) BuildSystemPrompt() string {
	var b strings.Builder

	a.writePersona(&b)
	a.writeFormattingContract(&b)
	a.writeDocumentApproach(&b)
	a.writeUserContext(&b)
	a.writeDocumentContext(&b)
	a.writeTaskExtraction(&b)

	return b.String()
}

func (a *Assembler) writePersona(b *strings.Builder) {
	b.WriteString("You are a friendly AI assistant for merchant services sales agents. ")
	b.WriteString("Think of yourself as a knowledgeable colleague who's been in the industry for years - professional but approachable.\n\n")
	b.WriteString("**PERSONALITY & TONE:**\n")
	b.WriteString("- Speak like a real person, not a robot\n")
	b.WriteString("- Use casual-professional language (like talking to a coworker)\n")
	b.WriteString("- Use contractions (I'll, you'll, we've) to sound more human\n")
	b.WriteString("- Be confident but not overly formal\n\n")
	b.WriteString("**RESPONSE STYLE: Keep responses SHORT and CONCISE (2-3 paragraphs maximum)**\n\n")
}

func (a *Assembler) writeFormattingContract(b *strings.Builder) {
	b.WriteString("**CRITICAL: USE PROPER HTML FORMATTING FOR ALL RESPONSES**\n\n")
	b.WriteString("**HTML FORMATTING REQUIREMENTS:**\n")
	b.WriteString("- Use <h2> or <h3> for section headers (never markdown ##)\n")
	b.WriteString("- Use <ul><li> tags for bullet points (never markdown bullets)\n")
	b.WriteString("- Use <strong> for emphasis (never markdown **)\n")
	b.WriteString("- Use <p> tags for paragraphs and <br> for line breaks\n\n")
}

func (a *Assembler) writeDocumentApproach(b *strings.Builder) {
	b.WriteString("**DOCUMENT-FIRST APPROACH:**\n")
	b.WriteString("When relevant documents are found in our internal storage:\n")
	b.WriteString("1. Give a brief, friendly answer (1-2 sentences)\n")
	b.WriteString("2. Point the user at the documents below for the full detail\n\n")
	b.WriteString("**RULES:**\n")
	b.WriteString("- ALWAYS prioritize internal documents over general knowledge\n")
	b.WriteString("- Keep explanations brief - let users click through to full documents\n")
	b.WriteString("- Only give detailed explanations when NO internal documents exist\n\n")
}

func (a *Assembler) writeUserContext(b *strings.Builder) {
	b.WriteString("User context: ")
	b.WriteString(a.userRole)
	b.WriteString("\n\n")
}

func (a *Assembler) writeDocumentContext(b *strings.Builder) {
	b.WriteString("DOCUMENT CONTEXT:\n")
	b.WriteString(FormatDocumentContext(a.passages))
	b.WriteString("\n\n")
}

func (a *Assembler) writeTaskExtraction(b *strings.Builder) {
	b.WriteString("ACTION ITEMS AND TASK EXTRACTION:\n")
	b.WriteString("- Extract action items, follow-up tasks, and deadlines from the conversation\n")
	b.WriteString("- Assign priority levels (high, medium, low) based on urgency indicators\n")
	b.WriteString("- Identify callback requirements, meeting schedules, and document preparation needs\n")
}

// FormatDocumentContext renders the top passages as a numbered list of
// name-plus-snippet lines, or the no-documents marker.
func FormatDocumentContext(passages []store.Passage) string {
	if len(passages) == 0 {
		return NoDocumentsMarker
	}

	limit := len(passages)
	if limit > maxContextPassages {
		limit = maxContextPassages
	}

	var lines []string
	for i := 0; i < limit; i++ {
		p := passages[i]
		name := p.Metadata.DocumentName
		if name == "" {
			name = fmt.Sprintf("Document %d", i+1)
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s...", i+1, name, snippet(p.Content, contextSnippetLen)))
	}
	return strings.Join(lines, "\n")
}

// DocumentPreviews renders clickable preview cards for the top passages,
// appended to the answer when documents were found.
func DocumentPreviews(passages []store.Passage) string {
	limit := len(passages)
	if limit > maxPreviewPassages {
		limit = maxPreviewPassages
	}

	var cards []string
	for _, p := range passages[:limit] {
		name := p.Metadata.DocumentName
		if name == "" {
			name = "Document"
		}
		cards = append(cards, fmt.Sprintf(
			"<div class=\"doc-preview\">\n"+
				"<h4>📄 %s</h4>\n"+
				"<p>%s • %s...</p>\n"+
				"<a href=\"/documents/%s\" target=\"_blank\">🔗 View Document</a> | "+
				"<a href=\"/api/documents/%s/download\" download=\"%s\">⬇️ Download</a>\n"+
				"</div>",
			name, documentType(p.Metadata.MimeType), snippet(p.Content, previewSnippetLen),
			p.DocumentID, p.DocumentID, name,
		))
	}
	return strings.Join(cards, "\n")
}

func documentType(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return "PDF"
	case strings.Contains(mimeType, "spreadsheet"):
		return "Excel"
	case strings.Contains(mimeType, "document"):
		return "Word"
	}
	return "Document"
}

func snippet(content string, maxLen int) string {
	runes := []rune(content)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return strings.TrimSpace(strings.ReplaceAll(string(runes), "\n", " "))
}
