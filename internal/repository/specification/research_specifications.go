package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters exchanges or logs by their research session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("research_session_id = ?", s.SessionID)
}

// ByDomain filters chunks by their source domain
type ByDomain struct {
	Domain string
}

func (s ByDomain) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("domain = ?", s.Domain)
}

// ByKind filters chunks by content kind (video, article, page)
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}
