package dto

import "encoding/json"

// UpsertContentChunkRequest is the authored form of a chunk. Text accepts a
// plain string or a per-stage object, matching the seed file layout.
type UpsertContentChunkRequest struct {
	Id            string          `json:"id" validate:"required,max=128"`
	Title         string          `json:"title" validate:"required"`
	StageTags     []string        `json:"stage" validate:"required,min=1,dive,oneof=shadow truth integration"`
	SymptomTags   []string        `json:"symptom,omitempty"`
	ArchetypeTags []string        `json:"archetype,omitempty"`
	Language      string          `json:"lang" validate:"required,max=8"`
	Text          json.RawMessage `json:"text" validate:"required"`
}

type UpsertContentChunkResponse struct {
	Id       string `json:"id"`
	Embedded bool   `json:"embedded"`
}

type GetContentChunkResponse struct {
	Id            string   `json:"id"`
	Title         string   `json:"title"`
	StageTags     []string `json:"stage"`
	SymptomTags   []string `json:"symptom,omitempty"`
	ArchetypeTags []string `json:"archetype,omitempty"`
	Language      string   `json:"lang"`
	Embedded      bool     `json:"embedded"`
}

// PublishEmbedChunkMessage is the payload carried on the embedding topic.
type PublishEmbedChunkMessage struct {
	ChunkId string `json:"chunk_id"`
}
