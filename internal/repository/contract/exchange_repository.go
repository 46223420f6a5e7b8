package contract

import (
	"context"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ExchangeRepository interface {
	Create(ctx context.Context, exchange *entity.Exchange) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exchange, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	// FindRecent returns up to limit exchanges for the session, oldest first.
	FindRecent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.Exchange, error)
}
