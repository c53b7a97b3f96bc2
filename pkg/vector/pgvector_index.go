package vector

import (
	"context"
	"fmt"
	"log"
	"time"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/contract"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/embedding"
	"sales-assistant-be/pkg/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PgVectorIndex runs cosine similarity search over the chunk_embeddings
// table through the embedding provider.
type PgVectorIndex struct {
	db                *gorm.DB
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	threshold         float64
	logger            *log.Logger
}

func NewPgVectorIndex(
	db *gorm.DB,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	threshold float64,
	logger *log.Logger,
) *PgVectorIndex {
	return &PgVectorIndex{
		db:                db,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		threshold:         threshold,
		logger:            logger,
	}
}

var _ Index = &PgVectorIndex{}

func (idx *PgVectorIndex) IsHealthy(ctx context.Context) bool {
	if idx.embeddingProvider == nil {
		return false
	}
	sqlDB, err := idx.db.DB()
	if err != nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx) == nil
}

func (idx *PgVectorIndex) Search(ctx context.Context, query string, topK int) ([]store.Passage, error) {
	embeddingRes, err := idx.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	uow := idx.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ChunkEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		topK,
		idx.threshold,
	)
	if err != nil {
		idx.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	documents := idx.loadDocuments(ctx, uow, scored)

	passages := make([]store.Passage, 0, len(scored))
	for _, res := range scored {
		passage := store.Passage{
			ID:         res.Embedding.Id.String(),
			DocumentID: res.Embedding.DocumentId.String(),
			Content:    res.Embedding.Document,
			Score:      res.Similarity,
			Metadata: store.PassageMetadata{
				ChunkIndex: res.Embedding.ChunkIndex,
			},
		}
		if doc, ok := documents[res.Embedding.DocumentId]; ok {
			createdAt := doc.CreatedAt
			passage.Metadata = store.PassageMetadata{
				DocumentName: doc.Name,
				WebViewLink:  fmt.Sprintf("/documents/%s", doc.Id),
				ChunkIndex:   res.Embedding.ChunkIndex,
				MimeType:     doc.MimeType,
				Category:     doc.Category,
				CreatedAt:    &createdAt,
				ViewCount:    doc.ViewCount,
				Rating:       doc.Rating,
			}
		}
		passages = append(passages, passage)
	}
	return passages, nil
}

// loadDocuments joins the owning documents so vector hits carry names,
// freshness and popularity like the keyword tiers do. A failed lookup
// degrades to bare chunk metadata instead of failing the tier.
func (idx *PgVectorIndex) loadDocuments(ctx context.Context, uow unitofwork.UnitOfWork, scored []*contract.ScoredChunkEmbedding) map[uuid.UUID]*entity.Document {
	ids := make([]uuid.UUID, 0, len(scored))
	seen := make(map[uuid.UUID]bool)
	for _, res := range scored {
		if seen[res.Embedding.DocumentId] {
			continue
		}
		seen[res.Embedding.DocumentId] = true
		ids = append(ids, res.Embedding.DocumentId)
	}
	if len(ids) == 0 {
		return nil
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		idx.logger.Printf("[WARN] Failed to load documents for vector results: %v", err)
		return nil
	}

	byId := make(map[uuid.UUID]*entity.Document, len(docs))
	for _, doc := range docs {
		byId[doc.Id] = doc
	}
	return byId
}

func (idx *PgVectorIndex) Upsert(ctx context.Context, chunkId, documentId string, chunkIndex int, content string) error {
	embeddingRes, err := idx.embeddingProvider.Generate(content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return fmt.Errorf("embedding generation failed: %w", err)
	}

	chunkUUID, err := uuid.Parse(chunkId)
	if err != nil {
		return fmt.Errorf("invalid chunk id: %w", err)
	}
	documentUUID, err := uuid.Parse(documentId)
	if err != nil {
		return fmt.Errorf("invalid document id: %w", err)
	}

	uow := idx.uowFactory.NewUnitOfWork(ctx)
	return uow.ChunkEmbeddingRepository().Create(ctx, &entity.ChunkEmbedding{
		Id:             uuid.New(),
		ChunkId:        chunkUUID,
		DocumentId:     documentUUID,
		Document:       content,
		EmbeddingValue: embeddingRes.Embedding.Values,
		ChunkIndex:     chunkIndex,
		CreatedAt:      time.Now(),
	})
}
