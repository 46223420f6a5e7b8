package implementation

import (
	"context"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/mapper"
	"growthboss-ai-be/internal/model"
	"growthboss-ai-be/internal/repository/contract"
	"growthboss-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type QueryLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryLogMapper
}

func NewQueryLogRepository(db *gorm.DB) contract.QueryLogRepository {
	return &QueryLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewQueryLogMapper(),
	}
}

func (r *QueryLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QueryLogRepositoryImpl) Create(ctx context.Context, log *entity.QueryLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryLog, error) {
	var models []*model.QueryLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.QueryLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *QueryLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.QueryLog{}).Count(&count).Error
	return count, err
}

func (r *QueryLogRepositoryImpl) Metrics(ctx context.Context) (*entity.QueryMetrics, error) {
	var metrics entity.QueryMetrics

	type aggregate struct {
		Total      int64
		AvgLatency float64
	}
	var agg aggregate
	err := r.db.WithContext(ctx).
		Model(&model.QueryLog{}).
		Select("COUNT(*) AS total, COALESCE(AVG(latency_ms), 0) AS avg_latency").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	metrics.TotalQueries = agg.Total
	metrics.AvgLatencyMs = agg.AvgLatency

	if err := r.db.WithContext(ctx).
		Model(&model.QueryLog{}).
		Where("result_count < ?", 3).
		Count(&metrics.KnowledgeGaps).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&model.QueryLog{}).
		Where("latency_ms > ?", 5000).
		Count(&metrics.SlowQueries).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&model.QueryLog{}).
		Where("research_session_id IS NOT NULL").
		Distinct("research_session_id").
		Count(&metrics.ActiveSessions).Error; err != nil {
		return nil, err
	}

	return &metrics, nil
}
