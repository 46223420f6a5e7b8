package service

import (
	"context"
	"fmt"

	"growthboss-ai-be/internal/dto"
	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/pkg/logger"
	"growthboss-ai-be/internal/pkg/serverutils"
	"growthboss-ai-be/internal/repository/specification"
	"growthboss-ai-be/internal/repository/unitofwork"
	"growthboss-ai-be/pkg/agents"
	"growthboss-ai-be/pkg/events"
	"growthboss-ai-be/pkg/nats"
	"growthboss-ai-be/pkg/rag"

	"github.com/google/uuid"
)

const (
	maxSources       = 5
	sessionTitleSize = 80
)

type IResearchService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
}

type researchService struct {
	uowFactory unitofwork.RepositoryFactory
	researcher *agents.Researcher
	publisher  *nats.Publisher
	defaultK   int
	log        logger.ILogger
}

func NewResearchService(
	uowFactory unitofwork.RepositoryFactory,
	researcher *agents.Researcher,
	publisher *nats.Publisher,
	defaultK int,
	log logger.ILogger,
) IResearchService {
	return &researchService{
		uowFactory: uowFactory,
		researcher: researcher,
		publisher:  publisher,
		defaultK:   defaultK,
		log:        log,
	}
}

func (s *researchService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	k := request.K
	if k <= 0 {
		k = s.defaultK
	}

	sessionId, err := s.resolveSession(ctx, request)
	if err != nil {
		return nil, err
	}

	result, err := s.researcher.Research(ctx, sessionId.String(), request.Question, k)
	if err != nil {
		return nil, serverutils.NewRetrievalError(fmt.Sprintf("research failed: %v", err))
	}

	s.publishCompleted(ctx, sessionId, request.Question, len(result.Evidence))

	return &dto.AskResponse{
		Answer:    result.Answer,
		Sources:   TopSources(result.Evidence, maxSources),
		SessionId: sessionId,
	}, nil
}

// resolveSession returns the requested session after verifying it exists, or
// creates a fresh one titled after the question.
func (s *researchService) resolveSession(ctx context.Context, request *dto.AskRequest) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if request.SessionId != nil {
		session, err := uow.ResearchSessionRepository().FindOne(ctx, specification.ByID{ID: *request.SessionId})
		if err != nil {
			return uuid.Nil, err
		}
		if session == nil {
			return uuid.Nil, serverutils.NewNotFoundError("research session not found")
		}
		return session.Id, nil
	}

	title := request.Question
	if len(title) > sessionTitleSize {
		title = title[:sessionTitleSize]
	}
	session := &entity.ResearchSession{Title: title}
	if err := uow.ResearchSessionRepository().Create(ctx, session); err != nil {
		return uuid.Nil, err
	}
	return session.Id, nil
}

func (s *researchService) publishCompleted(ctx context.Context, sessionId uuid.UUID, question string, resultCount int) {
	if s.publisher == nil {
		return
	}
	event := events.NewAnswerCompleted(sessionId.String(), question, resultCount)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("research", "failed to publish answer event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// TopSources maps the head of the evidence list to caller-facing citations.
func TopSources(evidence []rag.Chunk, limit int) []dto.SourceRef {
	if len(evidence) > limit {
		evidence = evidence[:limit]
	}
	sources := make([]dto.SourceRef, len(evidence))
	for i, c := range evidence {
		title := c.Metadata.Title
		if title == "" {
			title = c.Metadata.Source
		}
		sources[i] = dto.SourceRef{
			Title:  title,
			Domain: c.Metadata.Domain,
		}
	}
	return sources
}
