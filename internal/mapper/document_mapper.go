package mapper

import (
	"time"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:           d.Id,
		Name:         d.Name,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		Category:     d.Category,
		FolderId:     d.FolderId,
		UserId:       d.UserId,
		ViewCount:    d.ViewCount,
		Rating:       d.Rating,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:           d.Id,
		Name:         d.Name,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		Category:     d.Category,
		FolderId:     d.FolderId,
		UserId:       d.UserId,
		ViewCount:    d.ViewCount,
		Rating:       d.Rating,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

type ChunkEmbeddingMapper struct{}

func NewChunkEmbeddingMapper() *ChunkEmbeddingMapper {
	return &ChunkEmbeddingMapper{}
}

func (m *ChunkEmbeddingMapper) ToEntity(e *model.ChunkEmbedding) *entity.ChunkEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ChunkEmbedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		DocumentId:     e.DocumentId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModel(e *entity.ChunkEmbedding) *model.ChunkEmbedding {
	if e == nil {
		return nil
	}
	return &model.ChunkEmbedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		DocumentId:     e.DocumentId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}
