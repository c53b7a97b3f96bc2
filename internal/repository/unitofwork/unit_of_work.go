package unitofwork

import (
	"context"

	"sales-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository
	FaqRepository() contract.FaqRepository
	FolderRepository() contract.FolderRepository
	UsageLogRepository() contract.UsageLogRepository
}
