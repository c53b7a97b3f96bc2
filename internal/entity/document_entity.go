package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	Name         string
	OriginalName string
	MimeType     string
	Category     string
	FolderId     *uuid.UUID
	UserId       uuid.UUID
	ViewCount    int
	Rating       float64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Content    string
	ChunkIndex int
	CreatedAt  time.Time
}

// ChunkEmbedding stores the vectorized form of a document chunk. The write
// path is owned by the ingestion consumer, the read path by the vector index.
type ChunkEmbedding struct {
	Id             uuid.UUID
	ChunkId        uuid.UUID
	DocumentId     uuid.UUID
	Document       string // the text that was embedded, with its header/footer
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
}
