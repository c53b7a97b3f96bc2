package store

import "time"

// Passage is the unit of retrieval: one chunk of content pulled from a
// retrieval tier, scored in [0,1] by that tier. Passages live for a single
// request; only their document ids survive in the result cache.
type Passage struct {
	ID         string          `json:"id"`
	DocumentID string          `json:"document_id"`
	Content    string          `json:"content"`
	Score      float64         `json:"score"`
	Metadata   PassageMetadata `json:"metadata"`
}

type PassageMetadata struct {
	DocumentName string     `json:"document_name"`
	WebViewLink  string     `json:"web_view_link,omitempty"`
	ChunkIndex   int        `json:"chunk_index"`
	MimeType     string     `json:"mime_type"`
	Category     string     `json:"category,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	ViewCount    int        `json:"view_count,omitempty"`
	Rating       float64    `json:"rating,omitempty"`
}

// Citation points the user back at a passage the answer drew on.
type Citation struct {
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
	Snippet        string  `json:"snippet"`
	Type           string  `json:"type"`
}

type ActionItem struct {
	Task     string `json:"task"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

type FollowupTask struct {
	Task      string `json:"task"`
	Timeframe string `json:"timeframe"`
	Type      string `json:"type"` // "call" | "email" | "meeting" | "document" | "other"
}

// Answer is the final annotated output of the pipeline.
type Answer struct {
	Response      string         `json:"response"`
	Sources       []Citation     `json:"sources"`
	Reasoning     string         `json:"reasoning,omitempty"`
	ActionItems   []ActionItem   `json:"action_items"`
	FollowupTasks []FollowupTask `json:"followup_tasks"`
	Suggestions   []string       `json:"suggestions"`
}
