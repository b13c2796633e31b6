package mapper

import (
	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/model"
	"shadowwork-be/pkg/stage"
)

type SessionStateMapper struct{}

func NewSessionStateMapper() *SessionStateMapper {
	return &SessionStateMapper{}
}

func (m *SessionStateMapper) ToEntity(s *model.SessionState) *entity.SessionState {
	if s == nil {
		return nil
	}

	// An unparseable stage value in storage loads as shadow so a corrupt
	// row cannot take the turn down.
	st, err := stage.Parse(s.Stage)
	if err != nil {
		st = stage.Shadow
	}

	return &entity.SessionState{
		UserId:          s.UserId,
		SessionId:       s.SessionId,
		Stage:           st,
		Defensiveness:   s.Defensiveness,
		Acknowledgement: s.Acknowledgement,
		Readiness:       s.Readiness,
		ShadowStreak:    s.ShadowStreak,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *SessionStateMapper) ToModel(s *entity.SessionState) *model.SessionState {
	if s == nil {
		return nil
	}
	return &model.SessionState{
		UserId:          s.UserId,
		SessionId:       s.SessionId,
		Stage:           s.Stage.String(),
		Defensiveness:   s.Defensiveness,
		Acknowledgement: s.Acknowledgement,
		Readiness:       s.Readiness,
		ShadowStreak:    s.ShadowStreak,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
