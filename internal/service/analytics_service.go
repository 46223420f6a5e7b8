package service

import (
	"context"

	"growthboss-ai-be/internal/dto"
	"growthboss-ai-be/internal/repository/unitofwork"
)

type IAnalyticsService interface {
	GetMetrics(ctx context.Context) (*dto.MetricsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{uowFactory: uowFactory}
}

func (s *analyticsService) GetMetrics(ctx context.Context) (*dto.MetricsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	metrics, err := uow.QueryLogRepository().Metrics(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.MetricsResponse{
		TotalQueries:   metrics.TotalQueries,
		AvgLatencyMs:   metrics.AvgLatencyMs,
		KnowledgeGaps:  metrics.KnowledgeGaps,
		SlowQueries:    metrics.SlowQueries,
		ActiveSessions: metrics.ActiveSessions,
	}, nil
}
