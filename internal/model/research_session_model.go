package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResearchSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ResearchSession) TableName() string {
	return "research_sessions"
}
