package entity

import (
	"time"

	"shadowwork-be/pkg/retrieval"
	"shadowwork-be/pkg/stage"
)

// ContentChunk is one authored unit of supporting content. The id is
// author-supplied (retrieval orders ties by it), not generated.
type ContentChunk struct {
	Id            string
	Title         string
	StageTags     []stage.Stage
	SymptomTags   []string
	ArchetypeTags []string
	Language      string
	Text          retrieval.StageText
	Embedding     []float32 // empty until the ingestion pipeline embeds it
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

// ToRetrievalChunk maps the entity into the engine's read-only view.
func (c *ContentChunk) ToRetrievalChunk() retrieval.Chunk {
	return retrieval.Chunk{
		ID:            c.Id,
		Title:         c.Title,
		StageTags:     c.StageTags,
		SymptomTags:   c.SymptomTags,
		ArchetypeTags: c.ArchetypeTags,
		Language:      c.Language,
		Text:          c.Text,
		Embedding:     c.Embedding,
	}
}
