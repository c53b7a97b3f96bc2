package implementation

import (
	"context"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/mapper"
	"sales-assistant-be/internal/model"
	"sales-assistant-be/internal/repository/contract"
	"sales-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UsageLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageLogMapper
}

func NewUsageLogRepository(db *gorm.DB) contract.UsageLogRepository {
	return &UsageLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageLogMapper(),
	}
}

func (r *UsageLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UsageLogRepositoryImpl) Create(ctx context.Context, log *entity.UsageLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *UsageLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error) {
	var models []*model.UsageLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UsageLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UsageLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UsageLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
