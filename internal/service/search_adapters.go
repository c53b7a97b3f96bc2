package service

import (
	"context"
	"fmt"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/rag/retrieval"
	"sales-assistant-be/pkg/store"

	"github.com/google/uuid"
)

const chunkPassageMaxLen = 500

// FaqSearchAdapter exposes the FAQ table as a retrieval source. Matches
// are returned as Q/A passages; ranking within the FAQ source follows
// the curated priority column.
type FaqSearchAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFaqSearchAdapter(uowFactory unitofwork.RepositoryFactory) retrieval.FaqSearcher {
	return &FaqSearchAdapter{uowFactory: uowFactory}
}

func (a *FaqSearchAdapter) Search(ctx context.Context, query string, keywords []string) ([]store.Passage, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.FaqRepository().FindAll(ctx,
		specification.FaqMatches{Query: query, Keywords: keywords},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "priority", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("faq search: %w", err)
	}

	passages := make([]store.Passage, 0, len(entries))
	for _, entry := range entries {
		createdAt := entry.CreatedAt
		passages = append(passages, store.Passage{
			ID:         fmt.Sprintf("faq-%s", entry.Id),
			DocumentID: fmt.Sprintf("faq-%s", entry.Id),
			Content:    fmt.Sprintf("Q: %s\nA: %s", entry.Question, entry.Answer),
			Metadata: store.PassageMetadata{
				DocumentName: entry.Question,
				WebViewLink:  fmt.Sprintf("/faq/%s", entry.Id),
				MimeType:     "text/plain",
				Category:     entry.Category,
				CreatedAt:    &createdAt,
			},
		})
	}
	return passages, nil
}

// ChunkSearchAdapter runs the keyword and fallback tiers over document
// chunks, then joins the owning documents so downstream ranking has
// names, freshness and popularity to work with.
type ChunkSearchAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChunkSearchAdapter(uowFactory unitofwork.RepositoryFactory) retrieval.ChunkSearcher {
	return &ChunkSearchAdapter{uowFactory: uowFactory}
}

func (a *ChunkSearchAdapter) SearchByTerms(ctx context.Context, terms []string, limit int) ([]store.Passage, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ContentMatchesAny{Terms: terms},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, fmt.Errorf("chunk search: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	documents, err := a.loadDocuments(ctx, uow, chunks)
	if err != nil {
		return nil, err
	}

	passages := make([]store.Passage, 0, len(chunks))
	for _, chunk := range chunks {
		content := chunk.Content
		if runes := []rune(content); len(runes) > chunkPassageMaxLen {
			content = string(runes[:chunkPassageMaxLen])
		}

		passage := store.Passage{
			ID:         chunk.Id.String(),
			DocumentID: chunk.DocumentId.String(),
			Content:    content,
			Metadata: store.PassageMetadata{
				ChunkIndex: chunk.ChunkIndex,
			},
		}
		if doc, ok := documents[chunk.DocumentId]; ok {
			passage.Metadata = documentMetadata(doc, chunk.ChunkIndex)
		}
		passages = append(passages, passage)
	}
	return passages, nil
}

func (a *ChunkSearchAdapter) loadDocuments(ctx context.Context, uow unitofwork.UnitOfWork, chunks []*entity.DocumentChunk) (map[uuid.UUID]*entity.Document, error) {
	ids := make([]uuid.UUID, 0, len(chunks))
	seen := make(map[uuid.UUID]bool)
	for _, chunk := range chunks {
		if seen[chunk.DocumentId] {
			continue
		}
		seen[chunk.DocumentId] = true
		ids = append(ids, chunk.DocumentId)
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("load chunk documents: %w", err)
	}

	byId := make(map[uuid.UUID]*entity.Document, len(docs))
	for _, doc := range docs {
		byId[doc.Id] = doc
	}
	return byId, nil
}

func documentMetadata(doc *entity.Document, chunkIndex int) store.PassageMetadata {
	createdAt := doc.CreatedAt
	return store.PassageMetadata{
		DocumentName: doc.Name,
		WebViewLink:  fmt.Sprintf("/documents/%s", doc.Id),
		ChunkIndex:   chunkIndex,
		MimeType:     doc.MimeType,
		Category:     doc.Category,
		CreatedAt:    &createdAt,
		ViewCount:    doc.ViewCount,
		Rating:       doc.Rating,
	}
}
