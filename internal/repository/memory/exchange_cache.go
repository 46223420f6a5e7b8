package memory

import (
	"time"

	"growthboss-ai-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ExchangeCache keeps the recent-exchange window per session in memory so the
// preamble read does not hit Postgres on every question.
type ExchangeCache struct {
	cache *cache.Cache
}

func NewExchangeCache() *ExchangeCache {
	// Default expiration of 30 minutes, purge sweep every 10 minutes
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &ExchangeCache{
		cache: c,
	}
}

func (r *ExchangeCache) Get(sessionId uuid.UUID) ([]*entity.Exchange, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.([]*entity.Exchange), true
	}
	return nil, false
}

func (r *ExchangeCache) Set(sessionId uuid.UUID, exchanges []*entity.Exchange) {
	r.cache.Set(sessionId.String(), exchanges, cache.DefaultExpiration)
}

func (r *ExchangeCache) Invalidate(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
