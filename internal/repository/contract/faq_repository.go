package contract

import (
	"context"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.FaqEntry) error
	Update(ctx context.Context, faq *entity.FaqEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FaqEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaqEntry, error)
}

type FolderRepository interface {
	Create(ctx context.Context, folder *entity.Folder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error)
}
