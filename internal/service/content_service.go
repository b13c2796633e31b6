package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/repository/specification"
	"shadowwork-be/internal/repository/unitofwork"
	"shadowwork-be/pkg/retrieval"
	"shadowwork-be/pkg/stage"
)

type IContentService interface {
	Upsert(ctx context.Context, req *dto.UpsertContentChunkRequest) (*dto.UpsertContentChunkResponse, error)
	Show(ctx context.Context, id string) (*dto.GetContentChunkResponse, error)
	List(ctx context.Context, language string) ([]*dto.GetContentChunkResponse, error)
	Delete(ctx context.Context, id string) error

	// RefreshIndex rebuilds the in-memory retrieval index from every
	// embedded chunk and swaps it into the engine.
	RefreshIndex(ctx context.Context) error
}

type contentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	engine           *retrieval.Engine
	embeddingDim     int
	logger           *log.Logger
}

func NewContentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	engine *retrieval.Engine,
	embeddingDim int,
	logger *log.Logger,
) IContentService {
	return &contentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		engine:           engine,
		embeddingDim:     embeddingDim,
		logger:           logger,
	}
}

func (c *contentService) Upsert(ctx context.Context, req *dto.UpsertContentChunkRequest) (*dto.UpsertContentChunkResponse, error) {
	chunk, err := chunkFromRequest(req)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ContentChunkRepository().Upsert(ctx, chunk); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedChunkMessage{ChunkId: chunk.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.UpsertContentChunkResponse{
		Id:       chunk.Id,
		Embedded: len(chunk.Embedding) > 0,
	}, nil
}

func (c *contentService) Show(ctx context.Context, id string) (*dto.GetContentChunkResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	chunk, err := uow.ContentChunkRepository().FindOne(ctx, specification.ByChunkID{ChunkID: id})
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, nil
	}
	return chunkToResponse(chunk), nil
}

func (c *contentService) List(ctx context.Context, language string) ([]*dto.GetContentChunkResponse, error) {
	specs := []specification.Specification{specification.OrderBy{Field: "id"}}
	if language != "" {
		specs = append(specs, specification.ByLanguage{Language: language})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.ContentChunkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetContentChunkResponse, len(chunks))
	for i, chunk := range chunks {
		res[i] = chunkToResponse(chunk)
	}
	return res, nil
}

func (c *contentService) Delete(ctx context.Context, id string) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ContentChunkRepository().Delete(ctx, id); err != nil {
		return err
	}
	return c.RefreshIndex(ctx)
}

func (c *contentService) RefreshIndex(ctx context.Context) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.ContentChunkRepository().FindAll(ctx,
		specification.WithEmbedding{},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return fmt.Errorf("load embedded chunks: %w", err)
	}

	retrievable := make([]retrieval.Chunk, len(chunks))
	for i, chunk := range chunks {
		retrievable[i] = chunk.ToRetrievalChunk()
	}

	index := retrieval.NewIndex(c.embeddingDim, retrievable, c.logger)
	c.engine.SwapIndex(index)
	c.logger.Printf("[INFO] Retrieval index refreshed: %d chunks", index.Len())
	return nil
}

func chunkFromRequest(req *dto.UpsertContentChunkRequest) (*entity.ContentChunk, error) {
	stageTags := make([]stage.Stage, 0, len(req.StageTags))
	for _, raw := range req.StageTags {
		s, err := stage.Parse(raw)
		if err != nil {
			return nil, err
		}
		stageTags = append(stageTags, s)
	}

	var text retrieval.StageText
	if err := text.UnmarshalJSON(req.Text); err != nil {
		return nil, err
	}
	if text.IsZero() {
		return nil, fmt.Errorf("chunk %s: empty text", req.Id)
	}

	return &entity.ContentChunk{
		Id:            req.Id,
		Title:         req.Title,
		StageTags:     stageTags,
		SymptomTags:   req.SymptomTags,
		ArchetypeTags: req.ArchetypeTags,
		Language:      req.Language,
		Text:          text,
		CreatedAt:     time.Now(),
	}, nil
}

func chunkToResponse(chunk *entity.ContentChunk) *dto.GetContentChunkResponse {
	stageTags := make([]string, len(chunk.StageTags))
	for i, s := range chunk.StageTags {
		stageTags[i] = s.String()
	}
	return &dto.GetContentChunkResponse{
		Id:            chunk.Id,
		Title:         chunk.Title,
		StageTags:     stageTags,
		SymptomTags:   chunk.SymptomTags,
		ArchetypeTags: chunk.ArchetypeTags,
		Language:      chunk.Language,
		Embedded:      len(chunk.Embedding) > 0,
	}
}
