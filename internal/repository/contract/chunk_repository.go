package contract

import (
	"context"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySource(ctx context.Context, source string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchNearest returns the chunks closest to the embedding by cosine
	// distance, ascending, with the distance attached.
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredChunk, error)
}
