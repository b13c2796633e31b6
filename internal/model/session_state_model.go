package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionState struct {
	UserId          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stage           string    `gorm:"type:varchar(32);not null"`
	Defensiveness   int       `gorm:"default:0"`
	Acknowledgement int       `gorm:"default:0"`
	Readiness       int       `gorm:"default:0"`
	ShadowStreak    int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (SessionState) TableName() string {
	return "session_states"
}
