package entity

import (
	"time"

	"github.com/google/uuid"
)

type FaqEntry struct {
	Id        uuid.UUID
	Question  string
	Answer    string
	Category  string
	Priority  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Folder struct {
	Id         uuid.UUID
	Name       string
	FolderType string
	UserId     *uuid.UUID
	CreatedAt  time.Time
}
