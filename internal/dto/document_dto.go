package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	Name         string     `json:"name" validate:"required"`
	OriginalName string     `json:"original_name"`
	MimeType     string     `json:"mime_type"`
	Category     string     `json:"category"`
	FolderId     *uuid.UUID `json:"folder_id"`
	Content      string     `json:"content" validate:"required"`
}

type UploadDocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	ChunkCount int       `json:"chunk_count"`
}

type ShowDocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	OriginalName string     `json:"original_name"`
	MimeType     string     `json:"mime_type"`
	Category     string     `json:"category"`
	FolderId     *uuid.UUID `json:"folder_id"`
	ViewCount    int        `json:"view_count"`
	Rating       float64    `json:"rating"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// PublishEmbedChunkMessage is the payload of the chunk-embedding topic.
type PublishEmbedChunkMessage struct {
	ChunkId uuid.UUID `json:"chunk_id"`
}
