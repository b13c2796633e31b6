package mapper

import (
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/model"
	"shadowwork-be/pkg/retrieval"
	"shadowwork-be/pkg/stage"
)

type ContentChunkMapper struct{}

func NewContentChunkMapper() *ContentChunkMapper {
	return &ContentChunkMapper{}
}

func (m *ContentChunkMapper) ToEntity(c *model.ContentChunk) *entity.ContentChunk {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var stageTags []string
	_ = json.Unmarshal(c.StageTags, &stageTags)
	parsedStages := make([]stage.Stage, 0, len(stageTags))
	for _, raw := range stageTags {
		if s, err := stage.Parse(raw); err == nil {
			parsedStages = append(parsedStages, s)
		}
	}

	var symptomTags, archetypeTags []string
	_ = json.Unmarshal(c.SymptomTags, &symptomTags)
	_ = json.Unmarshal(c.ArchetypeTags, &archetypeTags)

	var text retrieval.StageText
	if len(c.Text) > 0 {
		_ = text.UnmarshalJSON(c.Text)
	}

	var embeddingValues []float32
	if c.Embedding != nil {
		embeddingValues = c.Embedding.Slice()
	}

	return &entity.ContentChunk{
		Id:            c.Id,
		Title:         c.Title,
		StageTags:     parsedStages,
		SymptomTags:   symptomTags,
		ArchetypeTags: archetypeTags,
		Language:      c.Language,
		Text:          text,
		Embedding:     embeddingValues,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     c.DeletedAt.Valid,
	}
}

func (m *ContentChunkMapper) ToModel(c *entity.ContentChunk) *model.ContentChunk {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	stageTags := make([]string, len(c.StageTags))
	for i, s := range c.StageTags {
		stageTags[i] = s.String()
	}
	stageJSON, _ := json.Marshal(stageTags)
	symptomJSON, _ := json.Marshal(c.SymptomTags)
	archetypeJSON, _ := json.Marshal(c.ArchetypeTags)
	textJSON, _ := c.Text.MarshalJSON()

	var embeddingVec *pgvector.Vector
	if len(c.Embedding) > 0 {
		v := pgvector.NewVector(c.Embedding)
		embeddingVec = &v
	}

	return &model.ContentChunk{
		Id:            c.Id,
		Title:         c.Title,
		StageTags:     datatypes.JSON(stageJSON),
		SymptomTags:   datatypes.JSON(symptomJSON),
		ArchetypeTags: datatypes.JSON(archetypeJSON),
		Language:      c.Language,
		Text:          datatypes.JSON(textJSON),
		Embedding:     embeddingVec,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
	}
}

func (m *ContentChunkMapper) ToEntities(chunks []*model.ContentChunk) []*entity.ContentChunk {
	entities := make([]*entity.ContentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
