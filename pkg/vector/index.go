package vector

import (
	"context"

	"sales-assistant-be/pkg/store"
)

// Index is the vector search surface the retriever depends on. The
// pgvector-backed implementation lives in this package; tests supply
// in-memory fakes.
type Index interface {
	IsHealthy(ctx context.Context) bool
	Search(ctx context.Context, query string, topK int) ([]store.Passage, error)
	Upsert(ctx context.Context, chunkId, documentId string, chunkIndex int, content string) error
}
