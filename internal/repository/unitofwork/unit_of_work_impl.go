package unitofwork

import (
	"context"
	"fmt"

	"sales-assistant-be/internal/repository/contract"
	"sales-assistant-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil when not started
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentChunkRepository() contract.DocumentChunkRepository {
	return implementation.NewDocumentChunkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository {
	return implementation.NewChunkEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FaqRepository() contract.FaqRepository {
	return implementation.NewFaqRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FolderRepository() contract.FolderRepository {
	return implementation.NewFolderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UsageLogRepository() contract.UsageLogRepository {
	return implementation.NewUsageLogRepository(u.getDB())
}
