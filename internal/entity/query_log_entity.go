package entity

import (
	"time"

	"github.com/google/uuid"
)

// QueryLog is one analytics record for a retrieval query.
type QueryLog struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Query             string
	LatencyMs         int64
	ResultCount       int
	ResearchSessionId *uuid.UUID
	CreatedAt         time.Time
}

// QueryMetrics is the aggregate view over query logs.
type QueryMetrics struct {
	TotalQueries   int64
	AvgLatencyMs   float64
	KnowledgeGaps  int64 // queries returning fewer than 3 results
	SlowQueries    int64 // queries slower than 5s
	ActiveSessions int64
}
