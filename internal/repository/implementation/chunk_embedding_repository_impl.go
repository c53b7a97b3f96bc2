package implementation

import (
	"context"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/mapper"
	"sales-assistant-be/internal/model"
	"sales-assistant-be/internal/repository/contract"
	"sales-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ChunkEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByChunkId(ctx context.Context, chunkId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chunk_id = ?", chunkId).Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkEmbedding, error) {
	var models []*model.ChunkEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChunkEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ChunkEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ChunkEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so similarity is
// computed as 1 - (embedding_value <=> query_vector).
func (r *ChunkEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, queryVector []float32, topK int, threshold float64) ([]*contract.ScoredChunkEmbedding, error) {
	if topK <= 0 {
		topK = 10
	}

	type result struct {
		model.ChunkEmbedding
		Similarity float64
	}
	var results []result

	vec := pgvector.NewVector(queryVector)

	err := r.db.WithContext(ctx).
		Table("chunk_embeddings").
		Select("chunk_embeddings.*, 1 - (embedding_value <=> ?) as similarity", vec).
		Where("chunk_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", vec, threshold).
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunkEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunkEmbedding{
			Embedding:  r.mapper.ToEntity(&res.ChunkEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
