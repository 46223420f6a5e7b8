package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Exchange struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResearchSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Query             string         `gorm:"type:text;not null"`
	Answer            string         `gorm:"type:text;not null"`
	Metadata          datatypes.JSON `gorm:"type:jsonb"` // mode, sources, latency
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
}

func (Exchange) TableName() string {
	return "exchanges"
}
