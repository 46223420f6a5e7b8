package mapper

import (
	"testing"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestExchangeMapperMetadata(t *testing.T) {
	m := NewExchangeMapper()

	t.Run("round trips metadata through jsonb", func(t *testing.T) {
		e := &entity.Exchange{
			Id:                uuid.New(),
			ResearchSessionId: uuid.New(),
			Query:             "how to price?",
			Answer:            "value based",
			Metadata:          map[string]interface{}{"result_count": float64(7)},
		}

		got := m.ToEntity(m.ToModel(e))
		require.NotNil(t, got)
		assert.Equal(t, e.Query, got.Query)
		assert.Equal(t, e.Answer, got.Answer)
		assert.Equal(t, e.Metadata, got.Metadata)
	})

	t.Run("malformed metadata degrades to nil", func(t *testing.T) {
		got := m.ToEntity(&model.Exchange{
			Id:       uuid.New(),
			Query:    "q",
			Metadata: datatypes.JSON(`{not json`),
		})
		require.NotNil(t, got)
		assert.Nil(t, got.Metadata)
		assert.Equal(t, "q", got.Query)
	})

	t.Run("nil safe both directions", func(t *testing.T) {
		assert.Nil(t, m.ToEntity(nil))
		assert.Nil(t, m.ToModel(nil))
	})
}
