package contract

import (
	"context"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
)

type UsageLogRepository interface {
	Create(ctx context.Context, log *entity.UsageLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
