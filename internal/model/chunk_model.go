package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Chunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Text       string          `gorm:"type:text;not null"`
	Source     string          `gorm:"type:text;not null;index"`
	Domain     string          `gorm:"type:text;not null;index"`
	Title      string          `gorm:"type:text"`
	Kind       string          `gorm:"type:text"`
	ChunkIndex int             `gorm:"default:0"` // 0-based index for ordering
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"` // OpenAI text-embedding-3-small uses 1536 dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

func (Chunk) TableName() string {
	return "chunks"
}
