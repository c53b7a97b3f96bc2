package model

import (
	"time"

	"github.com/google/uuid"
)

type FaqEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(100);index"`
	Priority  int       `gorm:"default:0;index"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (FaqEntry) TableName() string {
	return "faq_entries"
}

type Folder struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"type:varchar(255);not null"`
	FolderType string     `gorm:"type:varchar(50);default:'general'"`
	UserId     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

func (Folder) TableName() string {
	return "folders"
}
