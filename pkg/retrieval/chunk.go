package retrieval

import (
	"shadowwork-be/pkg/stage"
)

// Chunk is one retrievable unit of supporting content as the engine
// sees it: tags for filtering, a body, and a precomputed embedding.
// Chunks are built once at index load and never mutated by a turn.
type Chunk struct {
	ID            string
	Title         string
	StageTags     []stage.Stage
	SymptomTags   []string
	ArchetypeTags []string
	Language      string
	Text          StageText
	Embedding     []float32
}

// HasStageTag reports whether the chunk is tagged for s.
func (c Chunk) HasStageTag(s stage.Stage) bool {
	for _, tag := range c.StageTags {
		if tag == s {
			return true
		}
	}
	return false
}

// HasSymptomTag reports whether the chunk is tagged for the symptom.
func (c Chunk) HasSymptomTag(symptom string) bool {
	for _, tag := range c.SymptomTags {
		if tag == symptom {
			return true
		}
	}
	return false
}
