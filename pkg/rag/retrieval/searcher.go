package retrieval

import (
	"context"

	"sales-assistant-be/pkg/store"
)

// FaqSearcher finds FAQ entries matching a query. Implementations
// return passages with the Q/A pair as content; the retriever owns the
// boost score.
type FaqSearcher interface {
	Search(ctx context.Context, query string, keywords []string) ([]store.Passage, error)
}

// ChunkSearcher runs case-insensitive substring search over document
// chunks for any of the given terms.
type ChunkSearcher interface {
	SearchByTerms(ctx context.Context, terms []string, limit int) ([]store.Passage, error)
}
