package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChunkId        uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	ChunkIndex     int             `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
