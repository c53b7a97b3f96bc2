package mapper

import (
	"time"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/model"
)

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(f *model.FaqEntry) *entity.FaqEntry {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.FaqEntry{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		Category:  f.Category,
		Priority:  f.Priority,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaqMapper) ToModel(f *entity.FaqEntry) *model.FaqEntry {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.FaqEntry{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		Category:  f.Category,
		Priority:  f.Priority,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}
	return &entity.Folder{
		Id:         f.Id,
		Name:       f.Name,
		FolderType: f.FolderType,
		UserId:     f.UserId,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}
	return &model.Folder{
		Id:         f.Id,
		Name:       f.Name,
		FolderType: f.FolderType,
		UserId:     f.UserId,
		CreatedAt:  f.CreatedAt,
	}
}
