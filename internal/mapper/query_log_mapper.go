package mapper

import (
	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/model"
)

type QueryLogMapper struct{}

func NewQueryLogMapper() *QueryLogMapper {
	return &QueryLogMapper{}
}

func (m *QueryLogMapper) ToEntity(e *model.QueryLog) *entity.QueryLog {
	if e == nil {
		return nil
	}

	return &entity.QueryLog{
		Id:                e.Id,
		Query:             e.Query,
		LatencyMs:         e.LatencyMs,
		ResultCount:       e.ResultCount,
		ResearchSessionId: e.ResearchSessionId,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *QueryLogMapper) ToModel(e *entity.QueryLog) *model.QueryLog {
	if e == nil {
		return nil
	}

	return &model.QueryLog{
		Id:                e.Id,
		Query:             e.Query,
		LatencyMs:         e.LatencyMs,
		ResultCount:       e.ResultCount,
		ResearchSessionId: e.ResearchSessionId,
		CreatedAt:         e.CreatedAt,
	}
}
