package specification

import "gorm.io/gorm"

type ByChunkID struct {
	ChunkID string
}

func (s ByChunkID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ChunkID)
}

type ByChunkIDs struct {
	ChunkIDs []string
}

func (s ByChunkIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.ChunkIDs)
}

type ByLanguage struct {
	Language string
}

func (s ByLanguage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("language = ?", s.Language)
}

// WithEmbedding keeps only chunks the ingestion pipeline has embedded.
type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

type WithoutEmbedding struct{}

func (s WithoutEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}
