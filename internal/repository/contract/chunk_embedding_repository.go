package contract

import (
	"context"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunkEmbedding pairs an embedding row with its cosine similarity to
// the query vector.
type ScoredChunkEmbedding struct {
	Embedding  *entity.ChunkEmbedding
	Similarity float64
}

type ChunkEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ChunkEmbedding) error
	DeleteByChunkId(ctx context.Context, chunkId uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore runs a cosine-similarity nearest-neighbor query
	// and returns rows at or above threshold, best first.
	SearchSimilarWithScore(ctx context.Context, queryVector []float32, topK int, threshold float64) ([]*ScoredChunkEmbedding, error)
}
