package unitofwork

import (
	"context"

	"growthboss-ai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChunkRepository() contract.ChunkRepository
	ResearchSessionRepository() contract.ResearchSessionRepository
	ExchangeRepository() contract.ExchangeRepository
	QueryLogRepository() contract.QueryLogRepository
}
