package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentChunk struct {
	Id            string           `gorm:"type:varchar(128);primaryKey"`
	Title         string           `gorm:"type:text;not null"`
	StageTags     datatypes.JSON   `gorm:"type:jsonb"`
	SymptomTags   datatypes.JSON   `gorm:"type:jsonb"`
	ArchetypeTags datatypes.JSON   `gorm:"type:jsonb"`
	Language      string           `gorm:"type:varchar(8);index;not null"`
	Text          datatypes.JSON   `gorm:"type:jsonb"` // string or per-stage map, resolved at load
	Embedding     *pgvector.Vector `gorm:"type:vector(1536)"` // null until ingested
	CreatedAt     time.Time        `gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt   `gorm:"index"`
}

func (ContentChunk) TableName() string {
	return "content_chunks"
}
