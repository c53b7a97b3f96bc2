package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	OriginalName string         `gorm:"type:varchar(255)"`
	MimeType     string         `gorm:"type:varchar(100);default:'application/pdf'"`
	Category     string         `gorm:"type:varchar(100);index"`
	FolderId     *uuid.UUID     `gorm:"type:uuid;index"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ViewCount    int            `gorm:"default:0"`
	Rating       float64        `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text"`
	ChunkIndex int       `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
