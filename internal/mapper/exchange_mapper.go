package mapper

import (
	"encoding/json"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/model"

	"gorm.io/datatypes"
)

type ExchangeMapper struct{}

func NewExchangeMapper() *ExchangeMapper {
	return &ExchangeMapper{}
}

func (m *ExchangeMapper) ToEntity(e *model.Exchange) *entity.Exchange {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// malformed metadata degrades to nil rather than failing the read
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.Exchange{
		Id:                e.Id,
		ResearchSessionId: e.ResearchSessionId,
		Query:             e.Query,
		Answer:            e.Answer,
		Metadata:          metadata,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *ExchangeMapper) ToModel(e *entity.Exchange) *model.Exchange {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.Exchange{
		Id:                e.Id,
		ResearchSessionId: e.ResearchSessionId,
		Query:             e.Query,
		Answer:            e.Answer,
		Metadata:          metadata,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *ExchangeMapper) ToEntities(exchanges []*model.Exchange) []*entity.Exchange {
	entities := make([]*entity.Exchange, len(exchanges))
	for i, e := range exchanges {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
