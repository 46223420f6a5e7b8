package model

import (
	"time"

	"github.com/google/uuid"
)

type QueryLog struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Query             string     `gorm:"type:text;not null"`
	LatencyMs         int64      `gorm:"not null"`
	ResultCount       int        `gorm:"not null"`
	ResearchSessionId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
