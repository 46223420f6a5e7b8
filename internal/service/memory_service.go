package service

import (
	"context"
	"fmt"
	"sync"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/repository/memory"
	"growthboss-ai-be/internal/repository/unitofwork"
	"growthboss-ai-be/pkg/agents"

	"github.com/google/uuid"
)

// IMemoryService is the session-scoped conversation history used by the
// researcher path. Recent returns exchanges oldest first.
type IMemoryService interface {
	agents.ConversationMemory
	Invalidate(sessionId uuid.UUID)
}

type memoryService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ExchangeCache
	locks      sync.Map // session id -> *sync.Mutex
}

func NewMemoryService(uowFactory unitofwork.RepositoryFactory, cache *memory.ExchangeCache) IMemoryService {
	return &memoryService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *memoryService) lock(sessionId uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *memoryService) Recent(ctx context.Context, sessionID string, n int) ([]agents.Exchange, error) {
	sessionId, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}

	mu := s.lock(sessionId)
	mu.Lock()
	defer mu.Unlock()

	exchanges, found := s.cache.Get(sessionId)
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		exchanges, err = uow.ExchangeRepository().FindRecent(ctx, sessionId, n)
		if err != nil {
			return nil, err
		}
		s.cache.Set(sessionId, exchanges)
	}

	if len(exchanges) > n {
		exchanges = exchanges[len(exchanges)-n:]
	}

	recent := make([]agents.Exchange, len(exchanges))
	for i, ex := range exchanges {
		recent[i] = agents.Exchange{
			Query:  ex.Query,
			Answer: ex.Answer,
		}
	}
	return recent, nil
}

func (s *memoryService) Append(ctx context.Context, sessionID, query, answer string, metadata map[string]interface{}) error {
	sessionId, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	mu := s.lock(sessionId)
	mu.Lock()
	defer mu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	exchange := &entity.Exchange{
		ResearchSessionId: sessionId,
		Query:             query,
		Answer:            answer,
		Metadata:          metadata,
	}
	if err := uow.ExchangeRepository().Create(ctx, exchange); err != nil {
		return err
	}

	s.cache.Invalidate(sessionId)
	return nil
}

func (s *memoryService) Invalidate(sessionId uuid.UUID) {
	s.cache.Invalidate(sessionId)
}
