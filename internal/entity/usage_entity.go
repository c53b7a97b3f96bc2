package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog records one LLM provider call for cost tracking.
type UsageLog struct {
	Id             uuid.UUID
	UserId         string
	Provider       string
	Model          string
	Operation      string
	InputTokens    int
	OutputTokens   int
	ResponseTimeMs int64
	Success        bool
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
