package mapper

import (
	"time"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/model"

	"gorm.io/gorm"
)

type ResearchSessionMapper struct{}

func NewResearchSessionMapper() *ResearchSessionMapper {
	return &ResearchSessionMapper{}
}

func (m *ResearchSessionMapper) ToEntity(e *model.ResearchSession) *entity.ResearchSession {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ResearchSession{
		Id:        e.Id,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *ResearchSessionMapper) ToModel(e *entity.ResearchSession) *model.ResearchSession {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ResearchSession{
		Id:        e.Id,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ResearchSessionMapper) ToEntities(sessions []*model.ResearchSession) []*entity.ResearchSession {
	entities := make([]*entity.ResearchSession, len(sessions))
	for i, e := range sessions {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
