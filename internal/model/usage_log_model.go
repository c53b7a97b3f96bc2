package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UsageLog struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         string         `gorm:"type:varchar(64);index"`
	Provider       string         `gorm:"type:varchar(32);not null"`
	Model          string         `gorm:"type:varchar(64)"`
	Operation      string         `gorm:"type:varchar(32);default:'chat'"`
	InputTokens    int            `gorm:"default:0"`
	OutputTokens   int            `gorm:"default:0"`
	ResponseTimeMs int64          `gorm:"default:0"`
	Success        bool           `gorm:"default:true"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}
