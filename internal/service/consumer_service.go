package service

import (
	"context"
	"encoding/json"
	"log"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/repository/unitofwork"
	"growthboss-ai-be/pkg/analytics"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the analytics topic and persists query logs.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(pubSub *gochannel.GoChannel, uowFactory unitofwork.RepositoryFactory) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, analytics.TopicQueryTracked)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload analytics.QueryTrackedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal analytics message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	queryLog := &entity.QueryLog{
		Query:       payload.Query,
		LatencyMs:   payload.LatencyMs,
		ResultCount: payload.ResultCount,
	}
	if payload.SessionID != "" {
		if sessionId, err := uuid.Parse(payload.SessionID); err == nil {
			queryLog.ResearchSessionId = &sessionId
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.QueryLogRepository().Create(ctx, queryLog); err != nil {
		log.Printf("[ERROR] Failed to persist query log: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
