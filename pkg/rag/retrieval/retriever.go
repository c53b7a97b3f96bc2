package retrieval

import (
	"context"
	"log"
	"time"

	"sales-assistant-be/pkg/rag/optimizer"
	"sales-assistant-be/pkg/store"
	"sales-assistant-be/pkg/vector"

	"golang.org/x/sync/errgroup"
)

// Scores assigned per source. FAQ answers are curated so they outrank
// everything; the substring fallback is the least trusted.
const (
	faqBoostScore      = 0.95
	keywordTierScore   = 0.90
	substringTierScore = 0.70

	maxExpandedTerms = 3
)

// MultiSourceRetriever walks the search tiers in order of quality:
// vector index, then keyword search over expanded terms, then a
// substring scan with the domain synonym map. FAQ matches are fetched
// concurrently and always merged in first. A failing tier is logged and
// treated as empty; Retrieve never returns an error for "nothing found".
type MultiSourceRetriever struct {
	index     vector.Index
	faq       FaqSearcher
	chunks    ChunkSearcher
	optimizer *optimizer.QueryOptimizer
	timeout   time.Duration
	logger    *log.Logger
}

func NewMultiSourceRetriever(
	index vector.Index,
	faq FaqSearcher,
	chunks ChunkSearcher,
	queryOptimizer *optimizer.QueryOptimizer,
	timeout time.Duration,
	logger *log.Logger,
) *MultiSourceRetriever {
	return &MultiSourceRetriever{
		index:     index,
		faq:       faq,
		chunks:    chunks,
		optimizer: queryOptimizer,
		timeout:   timeout,
		logger:    logger,
	}
}

func (r *MultiSourceRetriever) Retrieve(ctx context.Context, query string, limit int) ([]store.Passage, error) {
	var faqResults, tierResults []store.Passage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		faqResults = r.searchFaq(gctx, query)
		return nil
	})
	g.Go(func() error {
		tierResults = r.searchTiers(gctx, query, limit)
		return nil
	})
	// Workers report failures by returning empty; the group never errors.
	_ = g.Wait()

	// FAQ hits first, then the executed tier in its native order.
	// First seen per document wins.
	merged := make([]store.Passage, 0, len(faqResults)+len(tierResults))
	seen := make(map[string]bool)
	for _, p := range append(faqResults, tierResults...) {
		if seen[p.DocumentID] {
			continue
		}
		seen[p.DocumentID] = true
		merged = append(merged, p)
	}

	r.logger.Printf("[RETRIEVAL] %d passages for %q (faq: %d, tiers: %d)",
		len(merged), query, len(faqResults), len(tierResults))
	return merged, nil
}

func (r *MultiSourceRetriever) searchFaq(ctx context.Context, query string) []store.Passage {
	searchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opt := r.optimizer.Optimize(query)
	results, err := r.faq.Search(searchCtx, query, opt.Synonyms)
	if err != nil {
		r.logger.Printf("[WARN] FAQ search failed: %v", err)
		return nil
	}

	for i := range results {
		results[i].Score = faqBoostScore
	}
	return results
}

func (r *MultiSourceRetriever) searchTiers(ctx context.Context, query string, limit int) []store.Passage {
	// Tier 1: semantic search when the index is up.
	if r.index.IsHealthy(ctx) {
		if results := r.searchVector(ctx, query, limit); len(results) > 0 {
			return results
		}
	} else {
		r.logger.Printf("[RETRIEVAL] Vector index unavailable, skipping tier 1")
	}

	// Tier 2: keyword search over the expanded query variants.
	opt := r.optimizer.Optimize(query)
	expanded := opt.Expanded
	if len(expanded) > maxExpandedTerms {
		expanded = expanded[:maxExpandedTerms]
	}
	if results := r.searchChunks(ctx, expanded, limit, keywordTierScore, "keyword"); len(results) > 0 {
		return results
	}

	// Tier 3: substring scan with the fixed synonym vocabulary.
	return r.searchChunks(ctx, r.optimizer.SearchTerms(query), limit, substringTierScore, "fallback")
}

func (r *MultiSourceRetriever) searchVector(ctx context.Context, query string, limit int) []store.Passage {
	searchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results, err := r.index.Search(searchCtx, query, limit)
	if err != nil {
		r.logger.Printf("[WARN] Vector search failed, falling through: %v", err)
		return nil
	}
	return results
}

func (r *MultiSourceRetriever) searchChunks(ctx context.Context, terms []string, limit int, score float64, tier string) []store.Passage {
	searchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results, err := r.chunks.SearchByTerms(searchCtx, terms, limit)
	if err != nil {
		r.logger.Printf("[WARN] %s chunk search failed, falling through: %v", tier, err)
		return nil
	}
	for i := range results {
		results[i].Score = score
	}
	return results
}
