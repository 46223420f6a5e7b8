package service

import (
	"context"

	"growthboss-ai-be/internal/dto"
	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/pkg/serverutils"
	"growthboss-ai-be/internal/repository/specification"
	"growthboss-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetExchangeResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	memory     IMemoryService
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, memory IMemoryService) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		memory:     memory,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ResearchSession{
		Title: request.Title,
	}
	if err := uow.ResearchSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ResearchSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = &dto.GetAllSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		}
	}
	return responses, nil
}

func (s *sessionService) GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetExchangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ResearchSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("research session not found")
	}

	exchanges, err := uow.ExchangeRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GetExchangeResponse, len(exchanges))
	for i, ex := range exchanges {
		responses[i] = &dto.GetExchangeResponse{
			Id:        ex.Id,
			Query:     ex.Query,
			Answer:    ex.Answer,
			CreatedAt: ex.CreatedAt,
		}
	}
	return responses, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ResearchSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NewNotFoundError("research session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ExchangeRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.ResearchSessionRepository().Delete(ctx, sessionId); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.memory.Invalidate(sessionId)
	return nil
}
