package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/repository/specification"
	"shadowwork-be/internal/repository/unitofwork"
	"shadowwork-be/pkg/embedding"
	"shadowwork-be/pkg/stage"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// IndexRefresher is notified after a chunk gains an embedding so the
// in-memory retrieval index can pick it up.
type IndexRefresher interface {
	RefreshIndex(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	indexRefresher    IndexRefresher
	logger            *log.Logger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	indexRefresher IndexRefresher,
	logger *log.Logger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		indexRefresher:    indexRefresher,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload dto.PublishEmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Printf("[INFO] Embedding content chunk %s", payload.ChunkId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunk, err := uow.ContentChunkRepository().FindOne(ctx, specification.ByChunkID{ChunkID: payload.ChunkId})
	if err != nil {
		cs.logger.Printf("[ERROR] Failed to get chunk %s: %v", payload.ChunkId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if chunk == nil {
		cs.logger.Printf("[ERROR] Chunk not found: %s", payload.ChunkId)
		msg.Ack() // Chunk deleted? Ack.
		return
	}

	// The document vector is built from the title plus the truth-resolved
	// body, the same body every stage falls back to at retrieval time.
	document := fmt.Sprintf("%s\n\n%s", chunk.Title, chunk.Text.ForStage(stage.Truth))

	res, err := cs.embeddingProvider.Generate(ctx, document, embedding.TaskRetrievalDocument)
	if err != nil {
		cs.logger.Printf("[ERROR] Failed to generate embedding for chunk %s: %v", payload.ChunkId, err)
		msg.Nack()
		return
	}

	if err := uow.ContentChunkRepository().UpdateEmbedding(ctx, chunk.Id, res.Values); err != nil {
		cs.logger.Printf("[ERROR] Failed to store embedding for chunk %s: %v", payload.ChunkId, err)
		msg.Nack()
		return
	}

	if cs.indexRefresher != nil {
		if err := cs.indexRefresher.RefreshIndex(ctx); err != nil {
			// The embedding is persisted; a failed refresh only delays
			// visibility until the next successful one.
			cs.logger.Printf("[WARN] Index refresh after chunk %s failed: %v", payload.ChunkId, err)
		}
	}

	cs.logger.Printf("[SUCCESS] Chunk embedded: %s (dim %d)", payload.ChunkId, len(res.Values))
	msg.Ack()
}
