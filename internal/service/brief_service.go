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

	"github.com/google/uuid"
)

// IBriefService runs the full brief pipeline: research the question, draft a
// plan, then have the critic tighten it.
type IBriefService interface {
	CreateBrief(ctx context.Context, request *dto.BriefRequest) (*dto.BriefResponse, error)
}

type briefService struct {
	uowFactory  unitofwork.RepositoryFactory
	researcher  *agents.Researcher
	synthesizer *agents.Synthesizer
	critic      *agents.Critic
	publisher   *nats.Publisher
	defaultK    int
	log         logger.ILogger
}

func NewBriefService(
	uowFactory unitofwork.RepositoryFactory,
	researcher *agents.Researcher,
	synthesizer *agents.Synthesizer,
	critic *agents.Critic,
	publisher *nats.Publisher,
	defaultK int,
	log logger.ILogger,
) IBriefService {
	return &briefService{
		uowFactory:  uowFactory,
		researcher:  researcher,
		synthesizer: synthesizer,
		critic:      critic,
		publisher:   publisher,
		defaultK:    defaultK,
		log:         log,
	}
}

func (s *briefService) CreateBrief(ctx context.Context, request *dto.BriefRequest) (*dto.BriefResponse, error) {
	brandContext := request.Context
	if brandContext == "" {
		brandContext = agents.DefaultBusinessContext
	}

	sessionId, err := s.resolveSession(ctx, request)
	if err != nil {
		return nil, err
	}

	research, err := s.researcher.Research(ctx, sessionId.String(), request.Question, s.defaultK)
	if err != nil {
		return nil, serverutils.NewRetrievalError(fmt.Sprintf("brief research failed: %v", err))
	}

	plan, err := s.synthesizer.Synthesize(ctx, request.Question, research.Answer, brandContext)
	if err != nil {
		return nil, serverutils.NewRetrievalError(fmt.Sprintf("brief synthesis failed: %v", err))
	}

	improved, err := s.critic.Critique(ctx, plan)
	if err != nil {
		return nil, serverutils.NewRetrievalError(fmt.Sprintf("brief critique failed: %v", err))
	}

	s.publishCompleted(ctx, request.Question)

	return &dto.BriefResponse{
		ResearchSummary: research.Answer,
		Plan:            plan,
		ImprovedPlan:    improved,
		Sources:         TopSources(research.Evidence, maxSources),
		SessionId:       sessionId,
	}, nil
}

func (s *briefService) resolveSession(ctx context.Context, request *dto.BriefRequest) (uuid.UUID, error) {
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

func (s *briefService) publishCompleted(ctx context.Context, question string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewBriefCompleted(question)); err != nil {
		s.log.Warn("brief", "failed to publish brief event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
