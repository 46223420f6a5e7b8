package implementation

import (
	"context"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/mapper"
	"growthboss-ai-be/internal/model"
	"growthboss-ai-be/internal/repository/contract"
	"growthboss-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExchangeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExchangeMapper
}

func NewExchangeRepository(db *gorm.DB) contract.ExchangeRepository {
	return &ExchangeRepositoryImpl{
		db:     db,
		mapper: mapper.NewExchangeMapper(),
	}
}

func (r *ExchangeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExchangeRepositoryImpl) Create(ctx context.Context, exchange *entity.Exchange) error {
	m := r.mapper.ToModel(exchange)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*exchange = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExchangeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Exchange, error) {
	var models []*model.Exchange
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExchangeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Exchange{}).Count(&count).Error
	return count, err
}

func (r *ExchangeRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("research_session_id = ?", sessionId).Delete(&model.Exchange{}).Error
}

func (r *ExchangeRepositoryImpl) FindRecent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.Exchange, error) {
	if limit <= 0 {
		limit = 5
	}

	// Newest N selected first, then reversed so callers see chronological order.
	var models []*model.Exchange
	err := r.db.WithContext(ctx).
		Where("research_session_id = ?", sessionId).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return r.mapper.ToEntities(models), nil
}
