package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/mapper"
	"shadowwork-be/internal/model"
	"shadowwork-be/internal/repository/contract"
)

type SessionStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionStateMapper
}

func NewSessionStateRepository(db *gorm.DB) contract.SessionStateRepository {
	return &SessionStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionStateMapper(),
	}
}

func (r *SessionStateRepositoryImpl) Load(ctx context.Context, userId, sessionId uuid.UUID) (*entity.SessionState, error) {
	var m model.SessionState
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userId, sessionId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionStateRepositoryImpl) Save(ctx context.Context, state *entity.SessionState) error {
	m := r.mapper.ToModel(state)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stage", "defensiveness", "acknowledgement", "readiness",
			"shadow_streak", "updated_at",
		}),
	}).Create(m).Error
}
