package service

import (
	"context"
	"fmt"

	"growthboss-ai-be/internal/dto"
	"growthboss-ai-be/internal/pkg/logger"
	"growthboss-ai-be/internal/pkg/serverutils"
	"growthboss-ai-be/pkg/agents"
	"growthboss-ai-be/pkg/events"
	"growthboss-ai-be/pkg/nats"
)

type ICouncilService interface {
	Deliberate(ctx context.Context, request *dto.CouncilRequest) (*dto.CouncilResponse, error)
}

type councilService struct {
	council   *agents.Council
	publisher *nats.Publisher
	log       logger.ILogger
}

func NewCouncilService(council *agents.Council, publisher *nats.Publisher, log logger.ILogger) ICouncilService {
	return &councilService{
		council:   council,
		publisher: publisher,
		log:       log,
	}
}

func (s *councilService) Deliberate(ctx context.Context, request *dto.CouncilRequest) (*dto.CouncilResponse, error) {
	result, err := s.council.Deliberate(ctx, request.Question, request.Context)
	if err != nil {
		return nil, serverutils.NewRetrievalError(fmt.Sprintf("council deliberation failed: %v", err))
	}

	mentors := make([]string, len(result.MentorResponses))
	for i, resp := range result.MentorResponses {
		mentors[i] = resp.Mentor
	}

	s.publishCompleted(ctx, request.Question, mentors)

	response := &dto.CouncilResponse{
		Synthesis: result.Synthesis,
		Mentors:   mentors,
	}
	if request.ShowDeliberation {
		response.Deliberation = make([]dto.MentorAnswerDTO, len(result.MentorResponses))
		for i, resp := range result.MentorResponses {
			response.Deliberation[i] = dto.MentorAnswerDTO{
				Mentor: resp.Mentor,
				Answer: resp.Answer,
			}
		}
	}
	return response, nil
}

func (s *councilService) publishCompleted(ctx context.Context, question string, mentors []string) {
	if s.publisher == nil {
		return
	}
	event := events.NewCouncilCompleted(question, mentors)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("council", "failed to publish council event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
