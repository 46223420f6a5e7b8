package entity

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one query/answer pair within a research session.
// Append-only; truncation to the most recent N happens at read time.
type Exchange struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResearchSessionId uuid.UUID `gorm:"type:uuid;index"`
	Query             string
	Answer            string
	Metadata          map[string]interface{}
	CreatedAt         time.Time
}
