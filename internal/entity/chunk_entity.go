package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a stored span of crawled source text plus its embedding.
// Immutable once ingested; the retrieval core only reads it.
type Chunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text       string
	Source     string
	Domain     string
	Title      string
	Kind       string
	ChunkIndex int
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

// ScoredChunk pairs a chunk with its cosine distance for one query.
type ScoredChunk struct {
	Chunk    *Chunk
	Distance float64
}
