package rerank

import (
	"io"
	"log"
	"math"
	"testing"
	"time"

	"sales-assistant-be/pkg/store"
)

func newTestReranker(t *testing.T) *Reranker {
	t.Helper()
	r, err := NewReranker(DefaultWeights(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}
	return r
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}

	bad := DefaultWeights()
	bad.Title = 0.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for weights not summing to one")
	}

	if _, err := NewReranker(bad, log.New(io.Discard, "", 0)); err == nil {
		t.Error("NewReranker accepted invalid weights")
	}
}

func TestRerankPreservesPassageSet(t *testing.T) {
	r := newTestReranker(t)
	passages := []store.Passage{
		{ID: "a", DocumentID: "a", Content: "clearent rates overview", Score: 0.5},
		{ID: "b", DocumentID: "b", Content: "unrelated hardware manual", Score: 0.6},
		{ID: "c", DocumentID: "c", Content: "pricing sheet", Score: 0.4},
	}

	got := r.Rerank(passages, "clearent rates", nil)
	if len(got) != len(passages) {
		t.Fatalf("reranked %d passages, want %d", len(got), len(passages))
	}

	seen := make(map[string]bool)
	for _, p := range got {
		seen[p.ID] = true
	}
	for _, p := range passages {
		if !seen[p.ID] {
			t.Errorf("passage %s dropped by rerank", p.ID)
		}
	}
}

func TestRerankDescendingOrder(t *testing.T) {
	r := newTestReranker(t)
	passages := []store.Passage{
		{ID: "a", DocumentID: "a", Content: "nothing relevant here", Score: 0.2},
		{ID: "b", DocumentID: "b", Content: "clearent rates clearent rates", Score: 0.9,
			Metadata: store.PassageMetadata{DocumentName: "clearent rates"}},
		{ID: "c", DocumentID: "c", Content: "some pricing info", Score: 0.5},
	}

	got := r.Rerank(passages, "clearent rates", nil)
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("scores not descending at %d: %v then %v", i, got[i-1].Score, got[i].Score)
		}
	}
	if got[0].ID != "b" {
		t.Errorf("top passage = %s, want the exact title match", got[0].ID)
	}
}

func TestRerankStableForEqualScores(t *testing.T) {
	r := newTestReranker(t)
	// Identical passages apart from id keep retrieval order.
	passages := []store.Passage{
		{ID: "first", DocumentID: "first", Content: "same content", Score: 0.5},
		{ID: "second", DocumentID: "second", Content: "same content", Score: 0.5},
	}

	got := r.Rerank(passages, "other query", nil)
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("equal-score order changed: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestRerankBlendsSingletonScore(t *testing.T) {
	r := newTestReranker(t)
	passages := []store.Passage{{ID: "only", Score: 0.42}}

	got := r.Rerank(passages, "query", nil)
	if len(got) != 1 {
		t.Fatalf("reranked %d passages, want 1", len(got))
	}
	// No title, no content, neutral freshness/popularity/context:
	// 0.20*0.42 + 0.10*0.5 + 0.10*0.5 + 0.15*0.5 = 0.259
	if math.Abs(got[0].Score-0.259) > 1e-9 {
		t.Errorf("singleton score = %v, want blended 0.259", got[0].Score)
	}
	if got[0].Score == 0.42 {
		t.Error("singleton passage kept its raw retrieval score")
	}
}

func TestTitleMatchLadder(t *testing.T) {
	tests := []struct {
		name  string
		title string
		query string
		want  float64
	}{
		{"no title", "", "clearent rates", 0},
		{"exact", "clearent rates", "clearent rates", 1.0},
		{"contains query", "guide to clearent rates 2025", "clearent rates", 0.8},
		{"all words scattered", "clearent merchant rates", "clearent rates", 0.6},
		{"half the words", "clearent onboarding", "clearent rates", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titleMatch(tt.title, tt.query); got != tt.want {
				t.Errorf("titleMatch(%q, %q) = %v, want %v", tt.title, tt.query, got, tt.want)
			}
		})
	}
}

func TestFreshnessSteps(t *testing.T) {
	daysAgo := func(d int) *time.Time {
		ts := time.Now().AddDate(0, 0, -d)
		return &ts
	}

	tests := []struct {
		name      string
		createdAt *time.Time
		want      float64
	}{
		{"no date", nil, 0.5},
		{"this week", daysAgo(2), 1.0},
		{"this month", daysAgo(20), 0.8},
		{"this quarter", daysAgo(60), 0.6},
		{"this year", daysAgo(200), 0.4},
		{"ancient", daysAgo(800), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := freshness(tt.createdAt); got != tt.want {
				t.Errorf("freshness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPopularityThresholds(t *testing.T) {
	tests := []struct {
		views  int
		rating float64
		want   float64
	}{
		{0, 0, 0.5},
		{11, 0, 0.6},
		{51, 0, 0.7},
		{101, 0, 0.8},
		{101, 4.5, 1.0},
		{5, 5, 0.7},
	}

	for _, tt := range tests {
		if got := popularity(tt.views, tt.rating); got != tt.want {
			t.Errorf("popularity(%d, %v) = %v, want %v", tt.views, tt.rating, got, tt.want)
		}
	}
}

func TestContextMatch(t *testing.T) {
	if got := contextMatch("anything", nil); got != 0.5 {
		t.Errorf("contextMatch with no terms = %v, want neutral 0.5", got)
	}
	if got := contextMatch("clearent pricing sheet", []string{"clearent", "terminal"}); got != 0.5 {
		t.Errorf("contextMatch = %v, want 0.5 for half the terms", got)
	}
	if got := contextMatch("clearent terminal pricing", []string{"clearent", "terminal"}); got != 1.0 {
		t.Errorf("contextMatch = %v, want 1.0 for all terms", got)
	}
}
