package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/events"
	pkgNats "sales-assistant-be/pkg/nats"
	"sales-assistant-be/pkg/utils"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, name string) ([]*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// Upload stores the document and its chunks, then queues one embedding
// job per chunk. Embeddings are built asynchronously by the consumer so
// the upload request returns as soon as the rows are committed.
func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document := entity.Document{
		Id:           uuid.New(),
		Name:         req.Name,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Category:     req.Category,
		FolderId:     req.FolderId,
		UserId:       userId,
		CreatedAt:    time.Now(),
	}

	// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars
	pieces := utils.SplitText(req.Content, 1500, 200)
	chunks := make([]*entity.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			Content:    piece,
			ChunkIndex: i,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}
	for _, chunk := range chunks {
		if err := uow.DocumentChunkRepository().Create(ctx, chunk); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	for _, chunk := range chunks {
		msgJson, err := json.Marshal(dto.PublishEmbedChunkMessage{ChunkId: chunk.Id})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}

		if s.eventPublisher != nil {
			evt := events.NewChunkCreatedEvent(chunk.Id.String(), document.Id.String(), chunk.ChunkIndex)
			// Auxiliary stream, a publish failure must not fail the upload
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish CHUNK_CREATED event: %v\n", err)
			}
		}
	}

	return &dto.UploadDocumentResponse{
		Id:         document.Id,
		ChunkCount: len(chunks),
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}
	res := documentResponse(document)
	return &res, nil
}

func (s *documentService) List(ctx context.Context, name string) ([]*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if name != "" {
		specs = append(specs, specification.NameContains{Name: name})
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowDocumentResponse, 0, len(documents))
	for _, document := range documents {
		res := documentResponse(document)
		result = append(result, &res)
	}
	return result, nil
}

// Delete removes the document together with its chunks and embedding
// rows in one transaction.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func documentResponse(document *entity.Document) dto.ShowDocumentResponse {
	return dto.ShowDocumentResponse{
		Id:           document.Id,
		Name:         document.Name,
		OriginalName: document.OriginalName,
		MimeType:     document.MimeType,
		Category:     document.Category,
		FolderId:     document.FolderId,
		ViewCount:    document.ViewCount,
		Rating:       document.Rating,
		CreatedAt:    document.CreatedAt,
		UpdatedAt:    document.UpdatedAt,
	}
}
