package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shadowwork-be/internal/config"
	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/repository/implementation"
	"shadowwork-be/pkg/database"
	"shadowwork-be/pkg/embedding"
	"shadowwork-be/pkg/retrieval"
	"shadowwork-be/pkg/stage"
)

// Seeds authored content chunks from a JSON file and embeds them
// synchronously, so a fresh database is immediately retrievable without
// waiting on the event pipeline.
func main() {
	seedPath := flag.String("file", "seed/content.json", "path to the content seed file")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	var embeddingProvider embedding.Provider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	case "stub":
		embeddingProvider = embedding.NewStubProvider(cfg.Dialogue.EmbeddingDim)
	default:
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
	}

	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatalf("Error: Failed to read seed file %s: %v", *seedPath, err)
	}

	var requests []dto.UpsertContentChunkRequest
	if err := json.Unmarshal(raw, &requests); err != nil {
		log.Fatalf("Error: Failed to parse seed file: %v", err)
	}

	repo := implementation.NewContentChunkRepository(db)
	ctx := context.Background()

	seeded := 0
	for i := range requests {
		req := &requests[i]

		chunk, err := chunkFromSeed(req)
		if err != nil {
			log.Printf("Warn: Skipping chunk %s: %v", req.Id, err)
			continue
		}

		if err := repo.Upsert(ctx, chunk); err != nil {
			log.Printf("Warn: Failed to upsert chunk %s: %v", req.Id, err)
			continue
		}

		document := fmt.Sprintf("%s\n\n%s", chunk.Title, chunk.Text.ForStage(stage.Truth))
		res, err := embeddingProvider.Generate(ctx, document, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("Warn: Failed to embed chunk %s: %v", req.Id, err)
			continue
		}

		if err := repo.UpdateEmbedding(ctx, chunk.Id, res.Values); err != nil {
			log.Printf("Warn: Failed to store embedding for chunk %s: %v", req.Id, err)
			continue
		}

		seeded++
		log.Printf("Seeded chunk %s (%s, dim %d)", chunk.Id, chunk.Language, len(res.Values))
	}

	log.Printf("Done: %d/%d chunks seeded", seeded, len(requests))
}

func chunkFromSeed(req *dto.UpsertContentChunkRequest) (*entity.ContentChunk, error) {
	stageTags := make([]stage.Stage, 0, len(req.StageTags))
	for _, rawTag := range req.StageTags {
		s, err := stage.Parse(rawTag)
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
		return nil, fmt.Errorf("empty text")
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
