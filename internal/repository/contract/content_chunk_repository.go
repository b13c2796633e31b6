package contract

import (
	"context"

	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/repository/specification"
)

type ContentChunkRepository interface {
	Upsert(ctx context.Context, chunk *entity.ContentChunk) error
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
