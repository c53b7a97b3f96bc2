package events

import "time"

const (
	EventTypeUsageRecorded = "USAGE_RECORDED"
	EventTypeChunkCreated  = "CHUNK_CREATED"
)

// NewUsageRecordedEvent wraps one LLM or embedding call for the usage
// stream consumers (billing, dashboards).
func NewUsageRecordedEvent(userId, provider, model, operation string, inputTokens, outputTokens int, responseTimeMs int64, success bool) Event {
	return BaseEvent{
		Type: EventTypeUsageRecorded,
		Data: map[string]interface{}{
			"user_id":          userId,
			"provider":         provider,
			"model":            model,
			"operation":        operation,
			"input_tokens":     inputTokens,
			"output_tokens":    outputTokens,
			"response_time_ms": responseTimeMs,
			"success":          success,
		},
		OccurredAt: time.Now(),
	}
}

// NewChunkCreatedEvent announces a document chunk that still needs an
// embedding row.
func NewChunkCreatedEvent(chunkId, documentId string, chunkIndex int) Event {
	return BaseEvent{
		Type: EventTypeChunkCreated,
		Data: map[string]interface{}{
			"chunk_id":    chunkId,
			"document_id": documentId,
			"chunk_index": chunkIndex,
		},
		OccurredAt: time.Now(),
	}
}
