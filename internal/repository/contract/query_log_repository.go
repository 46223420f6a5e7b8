package contract

import (
	"context"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/repository/specification"
)

type QueryLogRepository interface {
	Create(ctx context.Context, log *entity.QueryLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Metrics(ctx context.Context) (*entity.QueryMetrics, error)
}
