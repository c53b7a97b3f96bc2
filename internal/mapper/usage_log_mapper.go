package mapper

import (
	"encoding/json"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type UsageLogMapper struct{}

func NewUsageLogMapper() *UsageLogMapper {
	return &UsageLogMapper{}
}

func (m *UsageLogMapper) ToEntity(u *model.UsageLog) *entity.UsageLog {
	if u == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(u.Metadata) > 0 {
		// Best-effort: bad metadata should not fail a read
		_ = json.Unmarshal(u.Metadata, &metadata)
	}

	return &entity.UsageLog{
		Id:             u.Id,
		UserId:         u.UserId,
		Provider:       u.Provider,
		Model:          u.Model,
		Operation:      u.Operation,
		InputTokens:    u.InputTokens,
		OutputTokens:   u.OutputTokens,
		ResponseTimeMs: u.ResponseTimeMs,
		Success:        u.Success,
		Metadata:       metadata,
		CreatedAt:      u.CreatedAt,
	}
}

func (m *UsageLogMapper) ToModel(u *entity.UsageLog) *model.UsageLog {
	if u == nil {
		return nil
	}

	var metadata datatypes.JSON
	if u.Metadata != nil {
		if raw, err := json.Marshal(u.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.UsageLog{
		Id:             u.Id,
		UserId:         u.UserId,
		Provider:       u.Provider,
		Model:          u.Model,
		Operation:      u.Operation,
		InputTokens:    u.InputTokens,
		OutputTokens:   u.OutputTokens,
		ResponseTimeMs: u.ResponseTimeMs,
		Success:        u.Success,
		Metadata:       metadata,
		CreatedAt:      u.CreatedAt,
	}
}
