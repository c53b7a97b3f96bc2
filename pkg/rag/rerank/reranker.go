package rerank

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"sales-assistant-be/pkg/store"
)

// Weights blend the relevance signals into the final score. They must
// sum to one so final scores stay comparable to the originals.
type Weights struct {
	Original   float64
	Title      float64
	Content    float64
	Freshness  float64
	Popularity float64
	Context    float64
}

func DefaultWeights() Weights {
	return Weights{
		Original:   0.20,
		Title:      0.25,
		Content:    0.20,
		Freshness:  0.10,
		Popularity: 0.10,
		Context:    0.15,
	}
}

const weightSumTolerance = 1e-6

func (w Weights) Validate() error {
	sum := w.Original + w.Title + w.Content + w.Freshness + w.Popularity + w.Context
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("rerank weights sum to %.4f, want 1.0", sum)
	}
	return nil
}

// Signals holds the per-passage relevance components, each in [0,1].
type Signals struct {
	TitleMatch   float64
	ContentMatch float64
	Freshness    float64
	Popularity   float64
	ContextMatch float64
}

// Reranker reorders retrieved passages by blending the retriever's
// score with title, content, freshness, popularity, and context
// signals. It never adds or drops passages.
type Reranker struct {
	weights Weights
	logger  *log.Logger
}

func NewReranker(weights Weights, logger *log.Logger) (*Reranker, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Reranker{
		weights: weights,
		logger:  logger,
	}, nil
}

// Rerank returns a new slice sorted by final score descending. The sort
// is stable, so equal scores keep their retrieval order.
func (r *Reranker) Rerank(passages []store.Passage, query string, contextTerms []string) []store.Passage {
	if len(passages) == 0 {
		return passages
	}

	reranked := make([]store.Passage, len(passages))
	copy(reranked, passages)

	originalTop := reranked[0].DocumentID
	for i := range reranked {
		signals := r.calculateSignals(&reranked[i], query, contextTerms)
		reranked[i].Score = r.finalScore(reranked[i].Score, signals)
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})

	if reranked[0].DocumentID != originalTop {
		r.logger.Printf("[RERANK] Top result changed from %s to %s", originalTop, reranked[0].DocumentID)
	}
	return reranked
}

func (r *Reranker) calculateSignals(p *store.Passage, query string, contextTerms []string) Signals {
	queryLower := strings.ToLower(query)
	contentLower := strings.ToLower(p.Content)
	titleLower := strings.ToLower(p.Metadata.DocumentName)

	return Signals{
		TitleMatch:   titleMatch(titleLower, queryLower),
		ContentMatch: contentMatch(contentLower, queryLower),
		Freshness:    freshness(p.Metadata.CreatedAt),
		Popularity:   popularity(p.Metadata.ViewCount, p.Metadata.Rating),
		ContextMatch: contextMatch(contentLower, contextTerms),
	}
}

func (r *Reranker) finalScore(original float64, s Signals) float64 {
	return r.weights.Original*original +
		r.weights.Title*s.TitleMatch +
		r.weights.Content*s.ContentMatch +
		r.weights.Freshness*s.Freshness +
		r.weights.Popularity*s.Popularity +
		r.weights.Context*s.ContextMatch
}

func titleMatch(title, query string) float64 {
	if title == "" {
		return 0
	}
	if title == query {
		return 1.0
	}
	if strings.Contains(title, query) {
		return 0.8
	}

	queryWords := strings.Split(query, " ")
	matched := 0
	for _, word := range queryWords {
		if strings.Contains(title, word) {
			matched++
		}
	}
	if matched == len(queryWords) {
		return 0.6
	}
	return float64(matched) / float64(len(queryWords)) * 0.5
}

// contentMatch counts query-word occurrences normalized by the square
// root of the content length so long documents don't dominate.
func contentMatch(content, query string) float64 {
	queryWords := strings.Split(query, " ")
	contentWords := strings.Split(content, " ")
	if len(contentWords) == 0 {
		return 0
	}

	totalMatches := 0
	for _, queryWord := range queryWords {
		for _, word := range contentWords {
			if strings.Contains(strings.ToLower(word), queryWord) {
				totalMatches++
			}
		}
	}

	normalized := float64(totalMatches) / math.Sqrt(float64(len(contentWords)))
	return math.Min(normalized, 1.0)
}

func freshness(createdAt *time.Time) float64 {
	if createdAt == nil {
		return 0.5
	}

	ageInDays := time.Since(*createdAt).Hours() / 24
	switch {
	case ageInDays < 7:
		return 1.0
	case ageInDays < 30:
		return 0.8
	case ageInDays < 90:
		return 0.6
	case ageInDays < 365:
		return 0.4
	}
	return 0.2
}

func popularity(viewCount int, rating float64) float64 {
	score := 0.5

	switch {
	case viewCount > 100:
		score += 0.3
	case viewCount > 50:
		score += 0.2
	case viewCount > 10:
		score += 0.1
	}

	if rating > 4 {
		score += 0.2
	}

	return math.Min(score, 1.0)
}

func contextMatch(content string, contextTerms []string) float64 {
	if len(contextTerms) == 0 {
		return 0.5
	}

	matches := 0
	for _, term := range contextTerms {
		if strings.Contains(content, strings.ToLower(term)) {
			matches++
		}
	}
	return float64(matches) / float64(len(contextTerms))
}
