package dto

import (
	"sales-assistant-be/pkg/rag/cache"
	"sales-assistant-be/pkg/rag/routing"
	"sales-assistant-be/pkg/store"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AskRequest struct {
	Query    string        `json:"query" validate:"required"`
	UserRole string        `json:"user_role"`
	History  []ChatMessage `json:"history"`
	// Accepted for API compatibility; answers are always grounded in the
	// document corpus, never live web results.
	UseWebSearch bool `json:"use_web_search"`
}

type AskResponse struct {
	Response       string                 `json:"response"`
	Sources        []store.Citation       `json:"sources"`
	ActionItems    []store.ActionItem     `json:"action_items"`
	FollowupTasks  []store.FollowupTask   `json:"followup_tasks"`
	Suggestions    []string               `json:"suggestions"`
	Classification routing.Classification `json:"classification"`
	Cached         bool                   `json:"cached"`
	ResponseTimeMs int64                  `json:"response_time_ms"`
}

type CacheStatsResponse struct {
	Stats cache.Stats `json:"stats"`
}
